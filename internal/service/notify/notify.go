// Package notify delivers record mutation confirmations to the owner.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/domain/models"
	"github.com/mamadbah2/suraksha/internal/metrics"
	client "github.com/mamadbah2/suraksha/pkg/clients/whatsapp"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a notifier backed by logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs n at info level.
func (l *LogNotifier) Notify(_ context.Context, n models.Notification) {
	l.logger.Info(n.Title, zap.String("description", n.Description))
	metrics.NotificationsSent.WithLabelValues("log", "ok").Inc()
}

// maxInFlight bounds concurrent WhatsApp sends; notifications past it are dropped.
const maxInFlight = 4

// WhatsAppNotifier texts notifications to the owner's WhatsApp number. Sends
// run in the background so a slow API never holds up the mutating caller.
type WhatsAppNotifier struct {
	client  client.Client
	ownerID string
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
	logger  *zap.Logger
}

// NewWhatsAppNotifier wires a notifier sending to ownerID.
func NewWhatsAppNotifier(c client.Client, ownerID string, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{
		client:  c,
		ownerID: ownerID,
		timeout: 10 * time.Second,
		slots:   make(chan struct{}, maxInFlight),
		logger:  logger,
	}
}

// Notify queues n as a text message and returns immediately. Delivery
// failures are logged, never returned.
func (w *WhatsAppNotifier) Notify(ctx context.Context, n models.Notification) {
	select {
	case w.slots <- struct{}{}:
	default:
		metrics.NotificationsSent.WithLabelValues("whatsapp", "dropped").Inc()
		w.logger.Warn("whatsapp notification dropped, too many sends in flight", zap.String("title", n.Title))
		return
	}

	ctx = context.WithoutCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.slots }()
		w.send(ctx, n)
	}()
}

// Wait blocks until every queued send has finished.
func (w *WhatsAppNotifier) Wait() {
	w.wg.Wait()
}

func (w *WhatsAppNotifier) send(ctx context.Context, n models.Notification) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	_, err := w.client.SendTextMessage(ctx, client.SendTextMessageRequest{
		To:   w.ownerID,
		Body: fmt.Sprintf("%s\n%s", n.Title, n.Description),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("whatsapp", "error").Inc()
		w.logger.Warn("failed to deliver whatsapp notification", zap.String("title", n.Title), zap.Error(err))
		return
	}
	metrics.NotificationsSent.WithLabelValues("whatsapp", "ok").Inc()
}

// Notifier is satisfied by every notifier in this package.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Multi fans a notification out to every wrapped notifier in order.
type Multi []Notifier

// Notify forwards n to each notifier.
func (m Multi) Notify(ctx context.Context, n models.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
