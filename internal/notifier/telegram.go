package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram pushes scrape failures and run summaries to a chat. Messages
// use Markdown parse mode.
type Telegram struct {
	BotToken string
	ChatID   string
	Client   *http.Client

	// apiBase is swappable in tests
	apiBase string
	backoff func(attempt int)
}

func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		BotToken: botToken,
		ChatID:   chatID,
		Client:   &http.Client{Timeout: 15 * time.Second},
		apiBase:  telegramAPIBase,
		backoff: func(attempt int) {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		},
	}
}

// SendText delivers one text message, retrying up to 3 times with a
// growing pause between attempts.
func (t *Telegram) SendText(text string) error {
	if t.BotToken == "" || t.ChatID == "" {
		return fmt.Errorf("telegram bot token or chat id missing")
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.BotToken)

	payload := map[string]any{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	body, _ := json.Marshal(payload)

	var lastErr error
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := t.Client.Do(req)
		if err != nil {
			lastErr = err
			t.backoff(i)
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode/100 == 2 {
			return nil
		}
		lastErr = fmt.Errorf("telegram status=%d", resp.StatusCode)
		t.backoff(i)
	}
	return lastErr
}
