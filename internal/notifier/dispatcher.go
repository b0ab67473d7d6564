package notifier

import (
	"context"
	"fmt"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/ariefcatur/craft-marketplace.git/internal/telegram"
)

// Dispatcher: jalur kirim untuk notifikasi sweep (deadline expiry/reminder).
// Resolusi recipient di sini; user tanpa chat id di-skip tanpa error.
type Dispatcher struct {
	Users  ChatDirectory
	Sender telegram.Sender
}

func (d *Dispatcher) Dispatch(ctx context.Context, n notify.Notification) error {
	chatID, err := d.Users.TelegramChatID(ctx, n.UserID)
	if err != nil {
		return err
	}
	if chatID == "" {
		return nil
	}
	text := fmt.Sprintf("*%s*\n\n%s", n.Title, n.Message)
	return d.Sender.Send(ctx, chatID, text, nil)
}
