// internal/service/order/domain/repository.go
package domain

import "context"

// OrderRepository 是订单持久化的出站端口。
type OrderRepository interface {
	// Save 持久化一个新订单并把存储分配的 ID 回填到 order.ID。
	Save(ctx context.Context, order *Order) error
	// FindByID 查找订单，不存在时返回 ErrOrderNotFound。
	FindByID(ctx context.Context, id int64) (*Order, error)
}
