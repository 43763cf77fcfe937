package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Message is an inbound text message.
type Message struct {
	ChatID string
	Text   string
}

// Callback is an inbound inline-button tap.
type Callback struct {
	ID        string
	ChatID    string
	MessageID int
	Data      string
}

// Update is one inbound event; exactly one field is non-nil.
type Update struct {
	Message  *Message
	Callback *Callback
}

// UpdateHandler is called for each inbound update.
type UpdateHandler func(Update)

// telegramUpdate mirrors the Bot API update shape for long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message *struct {
			MessageID int `json:"message_id"`
			Chat      struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

// StartPolling long-polls getUpdates and feeds each update to handler.
// Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler UpdateHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.apiURL("getUpdates"), offset)
		req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
		if err != nil {
			log.Printf("[ERROR] create polling request: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] polling request failed: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[WARN] read polling response: %v", err)
			continue
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("[WARN] decode polling response: %v", err)
			continue
		}

		for _, raw := range result.Result {
			offset = raw.UpdateID + 1
			update, ok := convertUpdate(raw)
			if !ok {
				continue
			}
			handler(update)
		}
	}
}

func convertUpdate(raw telegramUpdate) (Update, bool) {
	if raw.CallbackQuery != nil && raw.CallbackQuery.Message != nil {
		return Update{Callback: &Callback{
			ID:        raw.CallbackQuery.ID,
			ChatID:    strconv.FormatInt(raw.CallbackQuery.Message.Chat.ID, 10),
			MessageID: raw.CallbackQuery.Message.MessageID,
			Data:      raw.CallbackQuery.Data,
		}}, true
	}
	if raw.Message != nil && strings.TrimSpace(raw.Message.Text) != "" {
		return Update{Message: &Message{
			ChatID: strconv.FormatInt(raw.Message.Chat.ID, 10),
			Text:   strings.TrimSpace(raw.Message.Text),
		}}, true
	}
	return Update{}, false
}
