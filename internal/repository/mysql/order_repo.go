package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/order"
)

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

// Create 连同订单明细一起写入
func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	return apperr.Store(r.db.WithContext(ctx).Create(o).Error)
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	var list []*order.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

func (r *orderRepo) UpdateStatusWhereTotalAbove(ctx context.Context, threshold float64, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("total > ? AND status <> ?", threshold, status).
		Update("status", status)
	if res.Error != nil {
		return 0, apperr.Store(res.Error)
	}
	return res.RowsAffected, nil
}
