package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Button is one inline keyboard button with its action payload.
type Button struct {
	Text string `json:"text"`
	Data string `json:"callback_data"`
}

// TelegramNotifier talks to the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (t *TelegramNotifier) apiURL(method string) string {
	return fmt.Sprintf("https://api.telegram.org/bot%s/%s", t.BotToken, method)
}

func (t *TelegramNotifier) post(method string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := t.Client.Post(t.apiURL(method), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram API error: %s status %d, body: %s", method, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func inlineKeyboard(buttons [][]Button) map[string]interface{} {
	return map[string]interface{}{"inline_keyboard": buttons}
}

// SendMessage sends an HTML-formatted message, optionally with an inline
// keyboard. Returns the sent message id for later edits.
func (t *TelegramNotifier) SendMessage(chatID, text string, buttons [][]Button) (int, error) {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if len(buttons) > 0 {
		payload["reply_markup"] = inlineKeyboard(buttons)
	}
	body, err := t.post("sendMessage", payload)
	if err != nil {
		return 0, err
	}
	var result struct {
		Result struct {
			MessageID int `json:"message_id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("decode sendMessage response: %w", err)
	}
	return result.Result.MessageID, nil
}

// EditMessage replaces the text (and keyboard) of a previously sent message.
func (t *TelegramNotifier) EditMessage(chatID string, messageID int, text string, buttons [][]Button) error {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if len(buttons) > 0 {
		payload["reply_markup"] = inlineKeyboard(buttons)
	}
	_, err := t.post("editMessageText", payload)
	return err
}

// AnswerCallback acknowledges a button tap, optionally with a toast text.
func (t *TelegramNotifier) AnswerCallback(callbackID, text string) error {
	payload := map[string]interface{}{"callback_query_id": callbackID}
	if text != "" {
		payload["text"] = text
	}
	_, err := t.post("answerCallbackQuery", payload)
	return err
}

// SendPhoto uploads a PNG from memory as a photo attachment.
func (t *TelegramNotifier) SendPhoto(chatID, caption string, png []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", chatID); err != nil {
		return fmt.Errorf("write chat_id field: %w", err)
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return fmt.Errorf("write caption field: %w", err)
		}
	}
	part, err := w.CreateFormFile("photo", "chart.png")
	if err != nil {
		return fmt.Errorf("create photo part: %w", err)
	}
	if _, err := part.Write(png); err != nil {
		return fmt.Errorf("write photo part: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := t.Client.Post(t.apiURL("sendPhoto"), w.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("sendPhoto: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: sendPhoto status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, chatID, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if _, err := t.SendMessage(chatID, text, nil); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] Telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
