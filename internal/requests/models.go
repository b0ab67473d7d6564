package requests

import (
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
)

type Request struct {
	ID             string
	BuyerID        string
	Title          string
	Status         Status
	Deadline       time.Time
	QuotationCount int
	ReminderSent   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpiryUpdate: satu entri batch expiry sweep. Update status hanya kena kalau
// row masih 'open' (guard di SQL), notification ikut di-skip kalau tidak.
type ExpiryUpdate struct {
	RequestID string
	Status    Status
	Reason    string
	Notif     notify.Notification
}

type ReminderUpdate struct {
	RequestID string
	Notif     notify.Notification
}
