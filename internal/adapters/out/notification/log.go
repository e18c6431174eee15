package notification

import (
	"context"

	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// LogGateway writes notifications and restock requests to the log. It stands in for the
// brokers when none are configured.
type LogGateway struct {
	logger *zap.Logger
}

func NewLogGateway(logger *zap.Logger) *LogGateway {
	return &LogGateway{logger: logger.With(zap.String("component", "notification-log"))}
}

func (g *LogGateway) NotifyOrder(_ context.Context, n ports.OrderNotification) error {
	g.logger.Info("order notification",
		zap.Stringer("orderId", n.OrderID),
		zap.Stringer("status", n.Status),
		zap.String("message", n.Message),
		zap.Time("timestamp", n.Timestamp),
	)
	return nil
}

func (g *LogGateway) NotifyAgent(_ context.Context, n ports.AgentNotification) error {
	g.logger.Info("agent notification",
		zap.Stringer("agentId", n.AgentID),
		zap.Stringer("orderId", n.OrderID),
		zap.String("message", n.Message),
	)
	return nil
}

func (g *LogGateway) ReleaseStock(_ context.Context, r ports.StockRelease) error {
	g.logger.Info("stock release requested",
		zap.Stringer("orderId", r.OrderID),
		zap.Int("items", len(r.Items)),
	)
	return nil
}
