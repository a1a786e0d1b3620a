package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/product"
)

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return &p, nil
}

func (r *productRepo) ListAll(ctx context.Context) ([]*product.Product, error) {
	var list []*product.Product
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

func (r *productRepo) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	query := r.db.WithContext(ctx)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	var list []*product.Product
	if err := query.Order("id ASC").Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

func (r *productRepo) ListByIDs(ctx context.Context, ids []int64) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []*product.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return list, nil
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	if err := r.db.WithContext(ctx).
		Model(&product.Product{}).
		Where("category <> ?", "").
		Distinct().
		Order("category ASC").
		Pluck("category", &cats).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return cats, nil
}

func (r *productRepo) Upsert(ctx context.Context, p *product.Product) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(p).Error
	return apperr.Store(err)
}
