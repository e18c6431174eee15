// Package notification implements the outbound notification and inventory gateways.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the gateway uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTopics names the topic of each message kind.
type KafkaTopics struct {
	OrderStatus string
	AgentTask   string
	Restock     string
}

// NewKafkaWriter returns a writer that takes the topic from each message and keys
// partitions by order id.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
}

// KafkaGateway publishes notifications and restock requests as JSON messages.
// It implements ports.NotificationGateway and ports.InventoryGateway.
type KafkaGateway struct {
	writer MessageWriter
	topics KafkaTopics
}

func NewKafkaGateway(writer MessageWriter, topics KafkaTopics) *KafkaGateway {
	return &KafkaGateway{writer: writer, topics: topics}
}

type orderStatusMessage struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

type agentTaskMessage struct {
	OrderID   string    `json:"orderId"`
	AgentID   string    `json:"agentId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type restockItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type restockMessage struct {
	OrderID string        `json:"orderId"`
	Items   []restockItem `json:"items"`
}

func (g *KafkaGateway) NotifyOrder(ctx context.Context, n ports.OrderNotification) error {
	return g.write(ctx, g.topics.OrderStatus, n.OrderID.String(), orderStatusMessage{
		OrderID:    n.OrderID.String(),
		CustomerID: n.CustomerID.String(),
		Status:     n.Status.String(),
		Message:    n.Message,
		Timestamp:  n.Timestamp.UTC(),
	})
}

func (g *KafkaGateway) NotifyAgent(ctx context.Context, n ports.AgentNotification) error {
	return g.write(ctx, g.topics.AgentTask, n.OrderID.String(), agentTaskMessage{
		OrderID:   n.OrderID.String(),
		AgentID:   n.AgentID.String(),
		Message:   n.Message,
		Timestamp: n.Timestamp.UTC(),
	})
}

func (g *KafkaGateway) ReleaseStock(ctx context.Context, r ports.StockRelease) error {
	items := make([]restockItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, restockItem{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}
	return g.write(ctx, g.topics.Restock, r.OrderID.String(), restockMessage{
		OrderID: r.OrderID.String(),
		Items:   items,
	})
}

// Close flushes and closes the writer.
func (g *KafkaGateway) Close() error {
	return g.writer.Close()
}

func (g *KafkaGateway) write(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return g.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}
