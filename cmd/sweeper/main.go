package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/config"
	"github.com/ariefcatur/craft-marketplace.git/internal/notifier"
	"github.com/ariefcatur/craft-marketplace.git/internal/postgres"
	"github.com/ariefcatur/craft-marketplace.git/internal/requests"
	"github.com/ariefcatur/craft-marketplace.git/internal/sweep"
	"github.com/ariefcatur/craft-marketplace.git/internal/telegram"
	"github.com/ariefcatur/craft-marketplace.git/internal/users"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	engine := &sweep.Engine{
		Store: &requests.Store{DB: db},
		Dispatcher: &notifier.Dispatcher{
			Users:  &users.Repo{DB: db},
			Sender: telegram.NewClient(cfg.TelegramToken),
		},
	}

	// satu run per interval; run pertama langsung saat start. Overlap dengan
	// trigger manual aman karena guard status/flag ada di level store.
	run := func() {
		rctx, rcancel := context.WithTimeout(ctx, 5*time.Minute)
		defer rcancel()
		res, err := engine.Run(rctx, time.Now().UTC())
		if err != nil {
			log.Printf("sweep failed: %v", err)
			return
		}
		log.Printf("sweep done: expired=%d reminded=%d", res.ExpiredCount, res.RemindedCount)
	}

	log.Printf("sweeper started: interval=%s", cfg.SweepInterval)
	run()
	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			run()
		case <-sig:
			log.Println("shutting down sweeper...")
			cancel()
			return
		}
	}
}
