package notifier

import (
	"context"
	"encoding/json"
	"log"

	kafkax "github.com/ariefcatur/craft-marketplace.git/internal/kafka"
	"github.com/ariefcatur/craft-marketplace.git/internal/orders"
	"github.com/ariefcatur/craft-marketplace.git/internal/telegram"
	kafkago "github.com/segmentio/kafka-go"
)

// Deduper: guard supaya satu event cuma diproses sekali walau delivery
// at-least-once. Implementasi production: redisx.Dedup.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// ChatDirectory: lookup identitas channel per user.
type ChatDirectory interface {
	TelegramChatID(ctx context.Context, userID string) (string, error)
}

type Service struct {
	Dedup  Deduper
	Users  ChatDirectory
	Sender telegram.Sender
}

// HandleStatusChanged: dipasang sebagai handler consumer. Semua kegagalan
// kirim cuma di-log dan offset tetap commit — dispatch best-effort, state
// order sudah final di DB.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// pesan rusak: skip, jangan blokir partition
		log.Printf("notifier: bad envelope: %v", err)
		return nil
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil
	} // ignore

	seen, err := s.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}
	if err := s.Dedup.Mark(ctx, env.EventID); err != nil {
		return err
	}

	p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
	if err != nil {
		log.Printf("notifier: bad payload for event %s: %v", env.EventID, err)
		return nil
	}

	s.notifyBuyer(ctx, p)
	s.notifyArtisan(ctx, p)
	return nil
}

func (s *Service) notifyBuyer(ctx context.Context, p orders.OrderStatusChangedPayload) {
	if p.BuyerPlatform != "telegram" || p.TelegramChatID == "" {
		return
	}
	text, ok := telegram.BuyerStatusMessage(p)
	if !ok {
		return
	}
	if err := s.Sender.Send(ctx, p.TelegramChatID, text, telegram.BrowseKeyboard()); err != nil {
		log.Printf("notifier: buyer send failed order=%s status=%s: %v", p.OrderID, p.NewStatus, err)
	}
}

func (s *Service) notifyArtisan(ctx context.Context, p orders.OrderStatusChangedPayload) {
	text, ok := telegram.ArtisanStatusMessage(p)
	if !ok || p.ArtisanID == "" {
		return
	}
	chatID, err := s.Users.TelegramChatID(ctx, p.ArtisanID)
	if err != nil {
		log.Printf("notifier: artisan lookup failed order=%s: %v", p.OrderID, err)
		return
	}
	if chatID == "" {
		return
	} // artisan belum connect telegram
	if err := s.Sender.Send(ctx, chatID, text, nil); err != nil {
		log.Printf("notifier: artisan send failed order=%s status=%s: %v", p.OrderID, p.NewStatus, err)
	}
}
