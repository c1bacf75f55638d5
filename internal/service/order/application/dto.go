// internal/service/order/application/dto.go
package application

// CreateOrderRequest 是创建订单的应用层入参。
// Item 已由接口层完成 item_id/item 两种字段名的归一化。
type CreateOrderRequest struct {
	Item     string
	Quantity int
}

// CreateOrderResponse 携带存储分配的订单 ID。
type CreateOrderResponse struct {
	ID int64 `json:"id"`
}
