package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/order"
	"github.com/example/storefront/internal/datamodels/user"
)

const (
	// LargeOrderThreshold 大额订单金额下限（不含）
	LargeOrderThreshold = 1_000_000
	// PromotionThreshold 订单金额超过该值时批量标记为已完成
	PromotionThreshold = 500_000
)

// EventPublisher 订单事件发布，通常由 MQ 实现
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// LargeOrderUser 大额订单用户
type LargeOrderUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserAverageOrder 用户平均订单金额
type UserAverageOrder struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	AverageOrder float64 `json:"average_order"`
}

// UserOrderSummary 单个用户的订单汇总
type UserOrderSummary struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	OrderCount   int            `json:"order_count"`
	TotalSpent   float64        `json:"total_spent"`
	AverageOrder float64        `json:"average_order"`
	Orders       []*order.Order `json:"orders"`
}

// AnalyticsService 订单统计查询与批量状态更新
type AnalyticsService struct {
	users     user.Repository
	orders    order.Repository
	publisher EventPublisher
}

// NewAnalyticsService publisher 可以为 nil
func NewAnalyticsService(users user.Repository, orders order.Repository, publisher EventPublisher) *AnalyticsService {
	return &AnalyticsService{
		users:     users,
		orders:    orders,
		publisher: publisher,
	}
}

// UsersWithLargeOrders 至少有一笔订单金额超过 1,000,000 的用户，每人只出现一次
func (s *AnalyticsService) UsersWithLargeOrders(ctx context.Context) ([]LargeOrderUser, error) {
	list, err := s.users.ListByOrderTotalAbove(ctx, LargeOrderThreshold)
	if err != nil {
		return nil, err
	}
	out := make([]LargeOrderUser, 0, len(list))
	seen := make(map[int64]struct{}, len(list))
	for _, u := range list {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, LargeOrderUser{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

// AverageOrderPerUser 覆盖全部用户，没有订单的用户平均值为 0
func (s *AnalyticsService) AverageOrderPerUser(ctx context.Context) ([]UserAverageOrder, error) {
	list, err := s.users.ListAll(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]UserAverageOrder, 0, len(list))
	for _, u := range list {
		var sum float64
		for _, o := range u.Orders {
			sum += o.Total
		}
		avg := float64(0)
		if n := len(u.Orders); n > 0 {
			avg = sum / float64(n)
		}
		out = append(out, UserAverageOrder{ID: u.ID, Name: u.Name, AverageOrder: avg})
	}
	return out, nil
}

// UserOrders 查询单个用户的订单及金额汇总
func (s *AnalyticsService) UserOrders(ctx context.Context, userID int64) (*UserOrderSummary, error) {
	if userID <= 0 {
		return nil, apperr.InvalidArgument("invalid user id %d", userID)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "user %d", userID)
	}
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &UserOrderSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		OrderCount: len(orders),
		Orders:     orders,
	}
	for _, o := range orders {
		out.TotalSpent += o.Total
	}
	if out.OrderCount > 0 {
		out.AverageOrder = out.TotalSpent / float64(out.OrderCount)
	}
	return out, nil
}

// PromoteCompletedOrders 将金额超过 500,000 且未完成的订单标记为 completed，返回实际更新的行数。
// 更新已提交后事件发布失败只记录日志。
func (s *AnalyticsService) PromoteCompletedOrders(ctx context.Context) (int64, error) {
	n, err := s.orders.UpdateStatusWhereTotalAbove(ctx, PromotionThreshold, order.StatusCompleted)
	if err != nil {
		return 0, err
	}
	GetMonitor().RecordPromotion(n)
	zap.L().Info("orders promoted",
		zap.Int64("updated", n),
		zap.Float64("min_total", PromotionThreshold))

	if n > 0 && s.publisher != nil {
		evt := &order.StatusChangedEvent{
			Status:       order.StatusCompleted,
			MinTotal:     PromotionThreshold,
			UpdatedCount: n,
			OccurredAt:   time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			zap.L().Warn("publish order status event failed", zap.Error(err))
			GetMonitor().RecordPublishError()
		}
	}
	return n, nil
}
