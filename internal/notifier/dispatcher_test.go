package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherSendsToKnownChat(t *testing.T) {
	dir := &memDirectory{chats: map[string]string{"buyer-1": "chat-1"}}
	sender := &memSender{}
	d := &Dispatcher{Users: dir, Sender: sender}

	n := notify.New("buyer-1", notify.TypeSystemUpdate, "Deadline Reminder ⏰", "Time remaining: 2 hours left", notify.RoleBuyer, nil, time.Now().UTC())
	require.NoError(t, d.Dispatch(context.Background(), n))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "chat-1", sender.sent[0].chatID)
	assert.Contains(t, sender.sent[0].text, "Deadline Reminder")
	assert.Contains(t, sender.sent[0].text, "2 hours left")
}

func TestDispatcherSkipsUserWithoutChat(t *testing.T) {
	dir := &memDirectory{chats: map[string]string{}}
	sender := &memSender{}
	d := &Dispatcher{Users: dir, Sender: sender}

	n := notify.New("buyer-x", notify.TypeDeadlineExpired, "t", "m", notify.RoleBuyer, nil, time.Now().UTC())
	require.NoError(t, d.Dispatch(context.Background(), n))
	assert.Empty(t, sender.sent)
}
