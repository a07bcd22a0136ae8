// Package notify доставляет текстовые уведомления во внешний вебхук. Публикация
// не блокирует операции: ошибки только логируются.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/economy-ledger/internal/lib/metrics"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/economy-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/economy-ledger/internal/models"
)

// Publisher публикует уведомления в exchange RabbitMQ. Канал amqp не
// потокобезопасен, поэтому публикации сериализуются.
type Publisher struct {
	mu         sync.Mutex
	ch         rabbitmq.Publisher
	exchange   string
	routingKey string
	metrics    *metrics.Metrics
	log        *slog.Logger
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch rabbitmq.Publisher, exchange, routingKey string, m *metrics.Metrics, log *slog.Logger) *Publisher {
	return &Publisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
		metrics:    m,
		log:        log,
	}
}

// Notify публикует сообщение. Пустое сообщение игнорируется. Отмена ctx не
// прерывает публикацию: операция к этому моменту уже зафиксирована.
func (p *Publisher) Notify(_ context.Context, message string) {
	if message == "" {
		return
	}

	p.mu.Lock()
	err := rabbitmq.PublishMessage(p.ch, p.exchange, p.routingKey, models.Notification{Message: message})
	p.mu.Unlock()

	if err != nil {
		p.metrics.Notification("publish", metrics.ResultError)
		p.log.Error("failed to publish notification", sl.Err(err))
		return
	}
	p.metrics.Notification("publish", metrics.ResultOK)
}

// Discard отбрасывает уведомления. Используется, когда уведомления отключены.
type Discard struct {
	Log *slog.Logger
}

func (d Discard) Notify(_ context.Context, message string) {
	if d.Log != nil {
		d.Log.Debug("notification discarded", slog.String("message", message))
	}
}
