package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// TelegramChatID: side lookup identitas channel. User tidak ada atau belum
// connect telegram -> "", bukan error; yang manggil tinggal skip kirim.
func (r *Repo) TelegramChatID(ctx context.Context, userID string) (string, error) {
	var chatID *string
	err := r.DB.QueryRow(ctx, `SELECT telegram_chat_id FROM users WHERE id=$1`, userID).Scan(&chatID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if chatID == nil {
		return "", nil
	}
	return *chatID, nil
}
