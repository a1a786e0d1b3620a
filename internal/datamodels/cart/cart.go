package cart

import (
	"context"
	"time"

	"github.com/example/storefront/internal/datamodels/product"
)

// Line 购物车明细，同一会话内每个商品只有一行
type Line struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:128;not null;uniqueIndex:idx_cart_session_product,priority:1" json:"sessionId"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_session_product,priority:2" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Line) TableName() string { return "cart_lines" }

// LineWithProduct 明细附带商品信息，商品已删除时 Product 为 nil
type LineWithProduct struct {
	Line
	Product *product.Product `json:"product"`
}

// Repository 购物车仓储接口
type Repository interface {
	Find(ctx context.Context, sessionID string, productID int64) (*Line, error)
	Create(ctx context.Context, l *Line) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	// ListBySession 按插入顺序返回会话内所有明细
	ListBySession(ctx context.Context, sessionID string) ([]*Line, error)
	// AddQuantity 原子地累加数量：不存在则插入，存在则 quantity += delta。
	// created 表示本次是否新建了记录。
	AddQuantity(ctx context.Context, sessionID string, productID int64, delta int) (line *Line, created bool, err error)
}
