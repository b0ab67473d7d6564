package notify

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// InsertTx menulis row notification di dalam tx yang sama dengan perubahan
// status, supaya commit-nya atomik.
func InsertTx(ctx context.Context, tx pgx.Tx, n Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO notifications(id, user_id, type, title, message, data, priority, target_role, is_read, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, data, n.Priority, n.TargetRole, n.IsRead, n.CreatedAt, n.UpdatedAt,
	)
	return err
}
