package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/user"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return &u, nil
}

func (r *userRepo) ListAll(ctx context.Context, withOrders bool) ([]*user.User, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if withOrders {
		query = query.Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	}
	var list []*user.User
	if err := query.Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

func (r *userRepo) ListByOrderTotalAbove(ctx context.Context, threshold float64) ([]*user.User, error) {
	// EXISTS 子查询天然去重，一个用户多笔大额订单也只返回一次
	var list []*user.User
	if err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id AND orders.total > ?)", threshold).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

// Upsert 邮箱冲突时不做修改，再按邮箱查回完整记录
func (r *userRepo) Upsert(ctx context.Context, u *user.User) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Omit("Orders").Create(u).Error; err != nil {
		return apperr.Store(err)
	}
	var stored user.User
	if err := r.db.WithContext(ctx).Where("email = ?", u.Email).First(&stored).Error; err != nil {
		return apperr.Store(err)
	}
	*u = stored
	return nil
}
