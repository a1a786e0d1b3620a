package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Find(ctx context.Context, sessionID string, productID int64) (*cart.Line, error) {
	var l cart.Line
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&l).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return &l, nil
}

func (r *cartRepo) Create(ctx context.Context, l *cart.Line) error {
	return apperr.Store(r.db.WithContext(ctx).Create(l).Error)
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&cart.Line{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return apperr.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart line %d", id)
	}
	return nil
}

func (r *cartRepo) ListBySession(ctx context.Context, sessionID string) ([]*cart.Line, error) {
	var list []*cart.Line
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

// AddQuantity 依赖 (session_id, product_id) 唯一索引做 upsert，
// 并发加购同一商品不会产生重复行，也不会丢失数量。
func (r *cartRepo) AddQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*cart.Line, bool, error) {
	var stored cart.Line
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l := cart.Line{
			SessionID: sessionID,
			ProductID: productID,
			Quantity:  delta,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", delta),
				"updated_at": time.Now(),
			}),
		}).Create(&l).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ? AND product_id = ?", sessionID, productID).
			First(&stored).Error
	})
	if err != nil {
		return nil, false, apperr.Store(err)
	}
	// 已有行的数量至少为 1，累加后必然大于 delta
	return &stored, stored.Quantity == delta, nil
}
