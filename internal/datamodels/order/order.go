package order

import (
	"context"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Order 订单模型
type Order struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	Total     float64   `gorm:"index;not null" json:"total"`
	Status    string    `gorm:"size:32;index;not null;default:pending" json:"status"`
	Items     []Item    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item 订单明细，创建后不再修改
type Item struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	OrderID   int64 `gorm:"index;not null" json:"orderId"`
	ProductID int64 `gorm:"index;not null" json:"productId"`
	Quantity  int   `gorm:"not null" json:"quantity"`
}

func (Item) TableName() string { return "order_items" }

// StatusChangedEvent 批量更新订单状态后发布的事件
type StatusChangedEvent struct {
	Status       string    `json:"status"`
	MinTotal     float64   `json:"minTotal"`
	UpdatedCount int64     `json:"updatedCount"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	// UpdateStatusWhereTotalAbove 单条语句批量更新，已是目标状态的订单不计入
	UpdateStatusWhereTotalAbove(ctx context.Context, threshold float64, status string) (int64, error)
}
