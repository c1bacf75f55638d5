// internal/service/order/domain/event.go
package domain

// OrderCreated 是订单成功落库后发布到消息通道的事件。
// 投递语义为至少一次，消费方必须容忍重复。
type OrderCreated struct {
	ID       int64  `json:"id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// NewOrderCreated 从已持久化的订单构造事件载体。
func NewOrderCreated(order *Order) *OrderCreated {
	return &OrderCreated{
		ID:       order.ID,
		Item:     order.Item,
		Quantity: order.Quantity,
	}
}
