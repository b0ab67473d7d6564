package orders

import (
	"context"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `id, buyer_id, artisan_id, product_name, artisan_name, buyer_name,
	total_cents, status, COALESCE(telegram_chat_id,''), COALESCE(buyer_platform,''), created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.BuyerID, &o.ArtisanID, &o.ProductName, &o.ArtisanName, &o.BuyerName,
		&o.TotalCents, &o.Status, &o.TelegramChatID, &o.BuyerPlatform, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *Repo) Get(ctx context.Context, orderID string) (Order, error) {
	return scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, orderID))
}

func (r *Repo) GetStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	if err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&s); err != nil {
		return "", err
	}
	return Status(s), nil
}

// Transition: lock row (FOR UPDATE) -> validasi tabel transisi -> tulis status
// + updated_at + row notification dalam satu tx. Status sama -> no-op: tanpa
// write, tanpa notification, changed=false. from = status sebelum transisi.
func (r *Repo) Transition(ctx context.Context, orderID string, to Status, now time.Time) (o Order, from Status, changed bool, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, "", false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err = scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID))
	if err != nil {
		return Order{}, "", false, err
	}
	from = o.Status

	plan, err := TransitionPlan(o, to, now)
	if err != nil {
		return Order{}, "", false, err
	}
	if plan.NoOp {
		return o, from, false, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1`, orderID, to, now); err != nil {
		return Order{}, "", false, err
	}
	for _, n := range plan.Notifications {
		if err := notify.InsertTx(ctx, tx, n); err != nil {
			return Order{}, "", false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, "", false, err
	}

	o.Status = to
	o.UpdatedAt = now
	return o, from, true, nil
}
