package sweep

import (
	"context"
	"log"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/ariefcatur/craft-marketplace.git/internal/requests"
)

const reminderWindow = 24 * time.Hour

// Store: selection + commit atomik per batch. Predicate-nya harus guard
// status/flag supaya re-run atau invocation overlap tidak dobel efek.
type Store interface {
	ExpiredOpen(ctx context.Context, now time.Time) ([]requests.Request, error)
	ReminderDue(ctx context.Context, now, until time.Time) ([]requests.Request, error)
	CommitExpiry(ctx context.Context, now time.Time, ups []requests.ExpiryUpdate) ([]notify.Notification, error)
	CommitReminders(ctx context.Context, now time.Time, ups []requests.ReminderUpdate) ([]notify.Notification, error)
}

// Dispatcher: kirim ke channel luar. Gagal kirim cuma di-log, state yang
// sudah commit tidak pernah di-rollback gara-gara dispatch.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notify.Notification) error
}

type Engine struct {
	Store      Store
	Dispatcher Dispatcher

	// Now dipakai untuk hitung sisa waktu saat staging; default time.Now.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

type Result struct {
	ExpiredCount  int
	RemindedCount int
	Timestamp     time.Time
}

// Run: expiry sweep dulu, baru reminder sweep. Urutan wajib: request yang
// lewat deadline di tick yang sama harus expired, bukan di-remind.
func (e *Engine) Run(ctx context.Context, now time.Time) (Result, error) {
	res := Result{Timestamp: now}

	expired, err := e.runExpiry(ctx, now)
	if err != nil {
		return res, err
	}
	res.ExpiredCount = expired

	reminded, err := e.runReminders(ctx, now)
	if err != nil {
		return res, err
	}
	res.RemindedCount = reminded
	return res, nil
}

func (e *Engine) runExpiry(ctx context.Context, now time.Time) (int, error) {
	due, err := e.Store.ExpiredOpen(ctx, now)
	if err != nil {
		return 0, err
	}

	ups := make([]requests.ExpiryUpdate, 0, len(due))
	for _, r := range due {
		if r.BuyerID == "" {
			// record cacat: skip satu ini saja, batch jalan terus
			log.Printf("sweep: request %s has no buyer_id, skipping", r.ID)
			continue
		}
		status, reason := ClassifyExpired(r.QuotationCount)
		ups = append(ups, requests.ExpiryUpdate{
			RequestID: r.ID,
			Status:    status,
			Reason:    reason,
			Notif:     expiryNotification(r, reason, now),
		})
	}

	committed, err := e.Store.CommitExpiry(ctx, now, ups)
	if err != nil {
		return 0, err
	}
	e.dispatchAll(ctx, committed)
	return len(committed), nil
}

func (e *Engine) runReminders(ctx context.Context, now time.Time) (int, error) {
	due, err := e.Store.ReminderDue(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return 0, err
	}

	ups := make([]requests.ReminderUpdate, 0, len(due))
	for _, r := range due {
		if r.BuyerID == "" {
			log.Printf("sweep: request %s has no buyer_id, skipping", r.ID)
			continue
		}
		// sisa waktu dihitung di sini, sesaat sebelum commit
		remaining := TimeRemaining(e.now(), r.Deadline)
		ups = append(ups, requests.ReminderUpdate{
			RequestID: r.ID,
			Notif:     reminderNotification(r, remaining, now),
		})
	}

	committed, err := e.Store.CommitReminders(ctx, now, ups)
	if err != nil {
		return 0, err
	}
	e.dispatchAll(ctx, committed)
	return len(committed), nil
}

func (e *Engine) dispatchAll(ctx context.Context, ns []notify.Notification) {
	if e.Dispatcher == nil {
		return
	}
	for _, n := range ns {
		if err := e.Dispatcher.Dispatch(ctx, n); err != nil {
			log.Printf("sweep: dispatch %s to %s failed: %v", n.Type, n.UserID, err)
		}
	}
}
