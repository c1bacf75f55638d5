// internal/service/order/domain/order.go
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation 标记因调用方输入非法而拒绝的请求，HTTP 层据此返回 400。
var ErrValidation = errors.New("validation error")

// ErrOrderNotFound 表示订单不存在。
var ErrOrderNotFound = errors.New("order not found")

// Order 是订单聚合的根实体。写入存储后不可变，ID 由存储层分配。
type Order struct {
	ID       int64
	Item     string
	Quantity int
}

// NewOrder 校验输入并构造一个待持久化的订单。
// 数量必须为正数；零或负数的订单没有业务意义，在进入任何存储之前拒绝。
func NewOrder(item string, quantity int) (*Order, error) {
	if item == "" {
		return nil, fmt.Errorf("%w: item is required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrValidation, quantity)
	}
	return &Order{Item: item, Quantity: quantity}, nil
}
