// internal/service/order/application/service.go
package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/order/domain"
	"orderflow/internal/service/order/port"
)

// OrderApplicationService 负责订单创建用例的编排:
// 校验 -> 持久化 -> 计数 -> 发布事件。
type OrderApplicationService struct {
	repo      domain.OrderRepository
	publisher port.EventPublisher
	created   prometheus.Counter
}

// NewOrderApplicationService 创建应用服务。created 计数器在每个成功落库的订单上加一。
func NewOrderApplicationService(repo domain.OrderRepository, publisher port.EventPublisher, created prometheus.Counter) *OrderApplicationService {
	return &OrderApplicationService{
		repo:      repo,
		publisher: publisher,
		created:   created,
	}
}

// CreateOrder 创建订单并在提交成功后发布 order_created 事件。
//
// 数据库提交与事件发布之间没有两阶段协调: 若进程恰好在两步之间崩溃，
// 订单存在而事件缺失，这是一个已接受的缺口。发布失败同样会作为服务端
// 错误上抛给调用方，即使此时订单已经存在。
func (s *OrderApplicationService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	order, err := domain.NewOrder(req.Item, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "could not persist order")
	}
	s.created.Inc()

	event := domain.NewOrderCreated(order)
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		logger.Ctx(ctx).Error().
			Int64("order_id", order.ID).
			Err(err).
			Msg("order persisted but event publish failed")
		return nil, errors.Wrapf(err, "order %d created but event publish failed", order.ID)
	}

	return &CreateOrderResponse{ID: order.ID}, nil
}

// GetOrder 按 ID 查询订单。
func (s *OrderApplicationService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}
