// Package events delivers committed domain events to the notification and inventory gateways.
//
// Delivery is asynchronous and at-most-once: Publish enqueues without blocking, a fixed pool
// of workers drains the queue, and failures are logged and counted but never retried or
// reported back to the command that produced the event.
package events

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"

	"go.uber.org/zap"
)

const (
	DefaultWorkers         = 4
	DefaultQueueSize       = 1024
	DefaultDeliveryTimeout = 5 * time.Second
)

// Config sizes the dispatcher. Zero values take the defaults.
type Config struct {
	Workers         int
	QueueSize       int
	DeliveryTimeout time.Duration
}

// Dispatcher implements ports.EventPublisher.
type Dispatcher struct {
	notifier  ports.NotificationGateway
	inventory ports.InventoryGateway
	logger    *zap.Logger
	cfg       Config

	queue chan order.Event

	mu      sync.RWMutex
	stopped bool

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewDispatcher(
	notifier ports.NotificationGateway,
	inventory ports.InventoryGateway,
	logger *zap.Logger,
	cfg Config,
) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = DefaultDeliveryTimeout
	}

	return &Dispatcher{
		notifier:  notifier,
		inventory: inventory,
		logger:    logger.With(zap.String("component", "event-dispatcher")),
		cfg:       cfg,
		queue:     make(chan order.Event, cfg.QueueSize),
	}
}

// Start launches the workers. Calling it again has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.logger.Info("starting event dispatcher", zap.Int("workers", d.cfg.Workers))
		for range d.cfg.Workers {
			d.wg.Add(1)
			go d.run()
		}
	})
}

// Publish enqueues events without blocking. Events that do not fit in the queue, or arrive
// after Stop, are dropped and counted.
func (d *Dispatcher) Publish(_ context.Context, events ...order.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, e := range events {
		if d.stopped {
			d.drop(e, "dispatcher stopped")
			continue
		}

		select {
		case d.queue <- e:
			metrics.EventQueueDepth.Inc()
		default:
			d.drop(e, "queue full")
		}
	}
}

// Stop closes the queue and waits until the workers drained it or ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("event dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("event dispatcher stop interrupted", zap.Int("pending", len(d.queue)))
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for e := range d.queue {
		metrics.EventQueueDepth.Dec()
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e order.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliveryTimeout)
	defer cancel()

	switch event := e.(type) {
	case order.StatusChanged:
		d.deliverStatusChanged(ctx, event)
	case order.AgentAssigned:
		err := d.notifier.NotifyAgent(ctx, ports.AgentNotification{
			AgentID:   event.AgentID,
			OrderID:   event.OrderID,
			Message:   event.Message,
			Timestamp: event.OccurredAt,
		})
		d.report(err, "agent", e)
	default:
		d.logger.Warn("no delivery for event", zap.String("event", e.EventName()))
	}
}

func (d *Dispatcher) deliverStatusChanged(ctx context.Context, event order.StatusChanged) {
	err := d.notifier.NotifyOrder(ctx, ports.OrderNotification{
		OrderID:      event.OrderID,
		CustomerID:   event.CustomerID,
		ContactEmail: event.ContactEmail,
		Status:       event.To,
		Message:      event.Message,
		Timestamp:    event.OccurredAt,
	})
	d.report(err, "order", event)

	if event.RestockRequired {
		err = d.inventory.ReleaseStock(ctx, ports.StockRelease{
			OrderID: event.OrderID,
			Items:   event.Items,
		})
		d.report(err, "inventory", event)
	}
}

func (d *Dispatcher) report(err error, channel string, e order.Event) {
	if err == nil {
		return
	}
	metrics.NotificationFailuresTotal.WithLabelValues(channel).Inc()
	d.logger.Warn("event delivery failed",
		zap.String("channel", channel),
		zap.String("event", e.EventName()),
		zap.Error(err),
	)
}

func (d *Dispatcher) drop(e order.Event, reason string) {
	metrics.EventsDroppedTotal.Inc()
	d.logger.Warn("event dropped", zap.String("event", e.EventName()), zap.String("reason", reason))
}
