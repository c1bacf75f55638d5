// internal/service/inventory/domain/event.go
package domain

// OrderCreated 是从消息通道消费到的订单创建事件。
// 通道的投递语义为至少一次且无去重，处理逻辑必须容忍重复消息。
type OrderCreated struct {
	ID       int64  `json:"id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}
