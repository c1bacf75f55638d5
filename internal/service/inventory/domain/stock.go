// internal/service/inventory/domain/stock.go
package domain

import "errors"

// ErrValidation 标记因调用方输入非法而拒绝的请求，HTTP 层据此返回 400。
var ErrValidation = errors.New("validation error")

// Reservation 是一次库存预占尝试的结果。
// 库存不足是业务结果而非错误: Success=false 且 Remaining 为预占前的当前值。
// 成功时 Remaining 为扣减后的剩余值。任何已提交状态下 Remaining >= 0。
type Reservation struct {
	Success   bool  `json:"success"`
	Remaining int64 `json:"remaining"`
}
