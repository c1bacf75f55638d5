// internal/service/inventory/infrastructure/kafka_consumer.go
package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/inventory/domain"
)

// MessageReader 是消费适配器对 kafka.Reader 的最小依赖面。
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderConsumerAdapter 持续消费 order_created 事件并记录处理指标。
//
// ackOnReceipt=true 时在处理前提交 offset（复刻自动确认语义: 处理中崩溃
// 即丢失该消息，无重投）；false 时处理完成后才提交。两种模式下消费侧都
// 不做去重，重复投递会被重复计数，库存变更不在本消费者的职责内。
type OrderConsumerAdapter struct {
	reader       MessageReader
	processed    prometheus.Counter
	ackOnReceipt bool
}

// NewOrderConsumerAdapter 创建消费适配器。Reader 由本适配器独占，不可共享。
func NewOrderConsumerAdapter(reader MessageReader, processed prometheus.Counter, ackOnReceipt bool) *OrderConsumerAdapter {
	return &OrderConsumerAdapter{
		reader:       reader,
		processed:    processed,
		ackOnReceipt: ackOnReceipt,
	}
}

// Run 阻塞运行消费循环，直到 ctx 取消才返回。
// 单条消息的失败只影响该条消息，不会终止循环。
func (a *OrderConsumerAdapter) Run(ctx context.Context) error {
	defer a.reader.Close()
	logger.Ctx(ctx).Info().Bool("ack_on_receipt", a.ackOnReceipt).Msg("order consumer started, waiting for orders")

	for {
		msg, err := a.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Ctx(ctx).Info().Msg("order consumer shutting down")
				return nil
			}
			logger.Ctx(ctx).Error().Err(err).Msg("could not fetch message, retrying")
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		if a.ackOnReceipt {
			a.commit(ctx, msg)
			a.processMessage(ctx, msg)
		} else {
			a.processMessage(ctx, msg)
			a.commit(ctx, msg)
		}
	}
}

func (a *OrderConsumerAdapter) commit(ctx context.Context, msg kafka.Message) {
	if err := a.reader.CommitMessages(ctx, msg); err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("failed to commit message offset")
	}
}

// processMessage 反序列化消息并记录处理结果。
// 消息体损坏时丢弃该条消息，绝不让单条坏消息拖垮消费循环。
func (a *OrderConsumerAdapter) processMessage(parentCtx context.Context, msg kafka.Message) {
	carrier := mq.KafkaHeaderCarrier(msg.Headers)
	ctx := otel.GetTextMapPropagator().Extract(parentCtx, &carrier)

	var event domain.OrderCreated
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Ctx(ctx).Error().
			Err(err).
			Str("topic", msg.Topic).
			Msg("malformed event body, message dropped")
		return
	}

	a.processed.Inc()

	// 库存扣减由预占接口同步完成，这里只做记录，避免重复扣减
	logger.Ctx(ctx).Info().
		Int64("order_id", event.ID).
		Str("item", event.Item).
		Int("quantity", event.Quantity).
		Msg("processed order notification")
}
