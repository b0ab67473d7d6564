package requests

import (
	"context"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct{ DB *pgxpool.Pool }

// ExpiredOpen: semua request open yang deadline-nya sudah lewat, plus jumlah
// quotation buat klasifikasi.
func (s *Store) ExpiredOpen(ctx context.Context, now time.Time) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT r.id, r.buyer_id, r.title, r.deadline, r.reminder_sent, COUNT(q.id)
		FROM craft_requests r
		LEFT JOIN quotations q ON q.request_id = r.id
		WHERE r.status = 'open' AND r.deadline < $1
		GROUP BY r.id, r.buyer_id, r.title, r.deadline, r.reminder_sent`, now)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

// ReminderDue: request open dengan deadline di window (now, until] yang belum
// pernah di-remind. Flag reminder_sent adalah idempotency boundary: record
// yang sudah true tidak pernah ke-select lagi, jadi sweep overlap aman.
func (s *Store) ReminderDue(ctx context.Context, now, until time.Time) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT r.id, r.buyer_id, r.title, r.deadline, r.reminder_sent, COUNT(q.id)
		FROM craft_requests r
		LEFT JOIN quotations q ON q.request_id = r.id
		WHERE r.status = 'open' AND r.deadline <= $2 AND r.deadline > $1 AND r.reminder_sent = false
		GROUP BY r.id, r.buyer_id, r.title, r.deadline, r.reminder_sent`, now, until)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]Request, error) {
	defer rows.Close()
	var out []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.BuyerID, &r.Title, &r.Deadline, &r.ReminderSent, &r.QuotationCount); err != nil {
			return nil, err
		}
		r.Status = StatusOpen
		out = append(out, r)
	}
	return out, rows.Err()
}

// CommitExpiry: satu tx untuk seluruh batch. Guard status='open' bikin update
// no-op kalau invocation lain sudah memproses row yang sama; notification-nya
// ikut di-skip supaya tidak dobel.
func (s *Store) CommitExpiry(ctx context.Context, now time.Time, ups []ExpiryUpdate) ([]notify.Notification, error) {
	if len(ups) == 0 {
		return nil, nil
	}
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var committed []notify.Notification
	for _, up := range ups {
		ct, err := tx.Exec(ctx, `
			UPDATE craft_requests
			SET status=$2, reason=$3, expired_at=$4, updated_at=$4
			WHERE id=$1 AND status='open'`,
			up.RequestID, up.Status, up.Reason, now)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() != 1 {
			continue
		}
		if err := notify.InsertTx(ctx, tx, up.Notif); err != nil {
			return nil, err
		}
		committed = append(committed, up.Notif)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return committed, nil
}

// CommitReminders: sama polanya; guard reminder_sent=false.
func (s *Store) CommitReminders(ctx context.Context, now time.Time, ups []ReminderUpdate) ([]notify.Notification, error) {
	if len(ups) == 0 {
		return nil, nil
	}
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var committed []notify.Notification
	for _, up := range ups {
		ct, err := tx.Exec(ctx, `
			UPDATE craft_requests
			SET reminder_sent=true, updated_at=$2
			WHERE id=$1 AND status='open' AND reminder_sent=false`,
			up.RequestID, now)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() != 1 {
			continue
		}
		if err := notify.InsertTx(ctx, tx, up.Notif); err != nil {
			return nil, err
		}
		committed = append(committed, up.Notif)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return committed, nil
}
