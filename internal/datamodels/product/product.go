package product

import (
	"context"
	"time"
)

// Product 商品模型，种子数据写入后只读
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"size:512" json:"description"`
	Category    string    `gorm:"size:64;index" json:"category"`
	Image       string    `gorm:"size:512" json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	// ListByIDs 批量查询，不存在的 ID 直接忽略
	ListByIDs(ctx context.Context, ids []int64) ([]*Product, error)
	Categories(ctx context.Context) ([]string, error)
	// Upsert 按主键插入，已存在时保持原样
	Upsert(ctx context.Context, p *Product) error
}

// Cache 商品列表缓存
type Cache interface {
	// GetAll 第二个返回值表示是否命中
	GetAll(ctx context.Context) ([]*Product, bool, error)
	SetAll(ctx context.Context, list []*Product) error
	Invalidate(ctx context.Context) error
}
