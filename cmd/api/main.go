package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/config"
	"github.com/ariefcatur/craft-marketplace.git/internal/httpx"
	kafkax "github.com/ariefcatur/craft-marketplace.git/internal/kafka"
	"github.com/ariefcatur/craft-marketplace.git/internal/notifier"
	"github.com/ariefcatur/craft-marketplace.git/internal/orders"
	"github.com/ariefcatur/craft-marketplace.git/internal/postgres"
	"github.com/ariefcatur/craft-marketplace.git/internal/redisx"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer: event perubahan status order
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	prod.Start(ctx)

	// Sweep engine untuk trigger manual (code path sama dengan cmd/sweeper)
	userRepo := &users.Repo{DB: db}
	engine := &sweep.Engine{
		Store: &requests.Store{DB: db},
		Dispatcher: &notifier.Dispatcher{
			Users:  userRepo,
			Sender: telegram.NewClient(cfg.TelegramToken),
		},
	}

	// Handlers
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Repo:     &orders.Repo{DB: db},
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)
	ah := &httpx.AdminHandler{Engine: engine, Token: cfg.AdminToken}
	ah.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
