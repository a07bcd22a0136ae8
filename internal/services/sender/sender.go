// Package services доставляет уведомления из очереди ретранслятору.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// StageDeliver метка метрики доставки.
const StageDeliver = "deliver"

// Transport отправляет текст уведомления.
type Transport interface {
	Send(ctx context.Context, message string) error
}

type SenderService struct {
	transport Transport
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, m *metrics.Metrics, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		metrics:   m,
		log:       log,
	}
}

// Deliver обрабатывает сообщение очереди. Повреждённые и пустые сообщения
// отбрасываются, ошибка доставки возвращает сообщение в очередь.
func (s *SenderService) Deliver(ctx context.Context, body []byte) error {
	const op = "services.sender.Deliver"
	var n models.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		s.log.Error("dropping malformed notification", sl.Err(err))
		s.metrics.Notification(StageDeliver, metrics.ResultRejected)
		return nil
	}
	if n.Message == "" {
		s.log.Warn("dropping empty notification")
		s.metrics.Notification(StageDeliver, metrics.ResultRejected)
		return nil
	}

	if err := s.transport.Send(ctx, n.Message); err != nil {
		s.metrics.Notification(StageDeliver, metrics.ResultError)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.Notification(StageDeliver, metrics.ResultOK)
	s.log.Debug("notification delivered")
	return nil
}
