package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Webhook пересылает текст во входящий вебхук мессенджера запросом POST {"text": ...}.
type Webhook struct {
	url  string
	http *http.Client
}

// NewWebhook создаёт клиента входящего вебхука.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type webhookPayload struct {
	Text string `json:"text"`
}

// Forward отправляет текст во внешний вебхук.
func (w *Webhook) Forward(ctx context.Context, text string) error {
	if w.url == "" {
		return fmt.Errorf("notify.Forward: webhook url is not configured")
	}
	if err := postJSON(ctx, w.http, w.url, webhookPayload{Text: text}); err != nil {
		return fmt.Errorf("notify.Forward: %w", err)
	}
	return nil
}
