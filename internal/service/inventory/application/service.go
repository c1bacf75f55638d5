// internal/service/inventory/application/service.go
package application

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"orderflow/internal/service/inventory/domain"
	"orderflow/internal/service/inventory/port"
)

// InventoryApplicationService 负责库存查询与预占用例。
type InventoryApplicationService struct {
	store        port.StockStore
	defaultStock int64
}

// NewInventoryApplicationService 创建应用服务。defaultStock 是商品首次被预占时的初始库存。
func NewInventoryApplicationService(store port.StockStore, defaultStock int64) *InventoryApplicationService {
	return &InventoryApplicationService{store: store, defaultStock: defaultStock}
}

// Reserve 校验输入后把预占委托给存储端的原子原语。
// 负数数量是输入错误，在到达存储之前拒绝；数量为 0 是合法的空操作。
func (s *InventoryApplicationService) Reserve(ctx context.Context, item string, quantity int64) (*domain.Reservation, error) {
	if item == "" {
		return nil, fmt.Errorf("%w: item is required", domain.ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative, got %d", domain.ErrValidation, quantity)
	}

	remaining, ok, err := s.store.Reserve(ctx, item, quantity, s.defaultStock)
	if err != nil {
		return nil, errors.Wrap(err, "stock store reserve")
	}
	return &domain.Reservation{Success: ok, Remaining: remaining}, nil
}

// GetStock 返回商品的当前库存。未见过的商品报告为 0，不触发初始化。
func (s *InventoryApplicationService) GetStock(ctx context.Context, item string) (int64, error) {
	stock, found, err := s.store.CurrentStock(ctx, item)
	if err != nil {
		return 0, errors.Wrap(err, "stock store read")
	}
	if !found {
		return 0, nil
	}
	return stock, nil
}
