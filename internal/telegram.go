package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// TelegramClient sends messages through the Telegram Bot API.
type TelegramClient struct {
	base   string // Bot endpoint including the token.
	client *http.Client
}

var _ messenger = (*TelegramClient)(nil)

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type botResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NewTelegramClient creates a client for the bot with the given token. The
// Bot API allows about 30 messages a second.
func NewTelegramClient(token string) *TelegramClient {
	return newTelegramClient("https://api.telegram.org", token, newBotUpstream("api.telegram.org", time.Second/30, http.DefaultTransport))
}

// newBotUpstream only backs off on 429. A 403 means one user blocked the bot
// and says nothing about the other recipients.
func newBotUpstream(host string, every time.Duration, base http.RoundTripper) *http.Client {
	return newUpstream(host, every, base, http.StatusTooManyRequests)
}

func newTelegramClient(base, token string, client *http.Client) *TelegramClient {
	return &TelegramClient{
		base:   strings.TrimSuffix(base, "/") + "/bot" + token,
		client: client,
	}
}

// SendMessage delivers an HTML-formatted message to the chat.
func (t *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	body, err := sonic.ConfigStd.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.base+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending to %d: %w", chatID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sending to %d: %w", chatID, statusErr(resp.StatusCode))
	}

	var out botResponse
	if err := sonic.ConfigStd.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("sending to %d: %s", chatID, out.Description)
	}
	return nil
}
