package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "marketplace-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`                  // payload spesifik
}

// OrderStatusChangedPayload bawa snapshot order sesudah transisi, biar
// notifier tidak perlu re-query buat nyusun pesan.
type OrderStatusChangedPayload struct {
	OrderID        string `json:"order_id"`
	BuyerID        string `json:"buyer_id"`
	ArtisanID      string `json:"artisan_id"`
	OldStatus      Status `json:"old_status"`
	NewStatus      Status `json:"new_status"`
	ProductName    string `json:"product_name"`
	ArtisanName    string `json:"artisan_name"`
	BuyerName      string `json:"buyer_name"`
	TotalCents     int    `json:"total_cents"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
	BuyerPlatform  string `json:"buyer_platform,omitempty"`
}
