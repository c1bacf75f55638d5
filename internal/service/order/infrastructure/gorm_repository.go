// internal/service/order/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"orderflow/internal/service/order/domain"
)

// OrderModel 是 orders 表的 GORM 映射。
type OrderModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Item     string `gorm:"size:255;not null"`
	Quantity int    `gorm:"not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// GormOrderRepository 是 domain.OrderRepository 的 GORM/MySQL 实现。
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository 创建一个新的 GORM 仓储实例。
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// EnsureSchema 在启动时幂等地创建 orders 表，不在请求路径上执行。
func (r *GormOrderRepository) EnsureSchema() error {
	if err := r.db.AutoMigrate(&OrderModel{}); err != nil {
		return errors.Wrap(err, "could not ensure orders table")
	}
	return nil
}

// Save 插入订单并回填自增 ID。
func (r *GormOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	model := OrderModel{Item: order.Item, Quantity: order.Quantity}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return errors.Wrap(err, "insert order")
	}
	order.ID = model.ID
	return nil
}

// FindByID 按主键查询订单。
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, errors.Wrapf(err, "find order %d", id)
	}
	return &domain.Order{ID: model.ID, Item: model.Item, Quantity: model.Quantity}, nil
}
