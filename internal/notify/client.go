package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Client отправляет уведомление ретранслятору запросом POST {"message": ...}.
type Client struct {
	url  string
	http *http.Client
}

// NewClient создаёт клиента ретранслятора с таймаутом запроса.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Send отправляет сообщение. Ответ вне диапазона 2xx считается ошибкой.
func (c *Client) Send(ctx context.Context, message string) error {
	if err := postJSON(ctx, c.http, c.url, models.Notification{Message: message}); err != nil {
		return fmt.Errorf("notify.Send: %w", err)
	}
	return nil
}

// postJSON отправляет payload запросом POST и проверяет код ответа.
func postJSON(ctx context.Context, client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream responded with status %d", resp.StatusCode)
	}
	return nil
}
