package notify

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeDeadlineExpired = "quotation_deadline_expired"
	TypeSystemUpdate    = "system_update"
	TypeOrderUpdate     = "order_update"
)

const (
	RoleBuyer   = "buyer"
	RoleArtisan = "artisan"
)

// Notification: fire record untuk feed UI. Dibuat bareng transisi status,
// persist dulu baru dikirim (best-effort) ke channel luar.
type Notification struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Data       map[string]any `json:"data"`
	Priority   string         `json:"priority"`
	TargetRole string         `json:"targetRole"`
	IsRead     bool           `json:"isRead"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func New(userID, typ, title, message, role string, data map[string]any, now time.Time) Notification {
	return Notification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       typ,
		Title:      title,
		Message:    message,
		Data:       data,
		Priority:   "medium",
		TargetRole: role,
		IsRead:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
