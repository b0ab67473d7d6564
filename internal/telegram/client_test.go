package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var got sendMessageReq
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("token123")
	c.BaseURL = srv.URL

	err := c.Send(context.Background(), "chat-1", "hello", BrowseKeyboard())
	require.NoError(t, err)

	assert.Equal(t, "/bottoken123/sendMessage", path)
	assert.Equal(t, "chat-1", got.ChatID)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "Markdown", got.ParseMode)
	require.NotNil(t, got.ReplyMarkup)
	assert.Equal(t, "show_all_products", got.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestClientSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("token123")
	c.BaseURL = srv.URL

	err := c.Send(context.Background(), "chat-1", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}
