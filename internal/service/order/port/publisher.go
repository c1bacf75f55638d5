// internal/service/order/port/publisher.go
package port

import (
	"context"

	"orderflow/internal/service/order/domain"
)

// EventPublisher 把领域事件交给消息通道。
// 只应在订单提交成功之后调用；发布失败必须上抛给原始调用方，不得静默丢弃。
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *domain.OrderCreated) error
}
