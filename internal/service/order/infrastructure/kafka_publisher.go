// internal/service/order/infrastructure/kafka_publisher.go
package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/order/domain"
)

// OrderProducerAdapter 是 port.EventPublisher 的 Kafka 实现。
// Writer 可安全共享，因此同一个适配器实例可以服务所有请求。
type OrderProducerAdapter struct {
	writer *kafka.Writer
}

// NewOrderProducerAdapter 创建事件发布适配器。
func NewOrderProducerAdapter(writer *kafka.Writer) *OrderProducerAdapter {
	return &OrderProducerAdapter{writer: writer}
}

// PublishOrderCreated 序列化事件并写入通道。
// 以 item 作为消息 key，保证同一商品的事件落在同一分区。
func (p *OrderProducerAdapter) PublishOrderCreated(ctx context.Context, event *domain.OrderCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal order created event")
	}
	if err := mq.ProduceMessage(ctx, p.writer, []byte(event.Item), body); err != nil {
		return errors.Wrap(err, "produce order created event")
	}
	return nil
}
