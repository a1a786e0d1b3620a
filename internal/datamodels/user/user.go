package user

import (
	"context"
	"time"

	"github.com/example/storefront/internal/datamodels/order"
)

// User 用户模型，由注册或种子数据创建
type User struct {
	ID        int64         `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"size:128;not null" json:"name"`
	Email     string        `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Orders    []order.Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Repository 用户仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	// ListAll 按 ID 升序返回全部用户，withOrders 为 true 时预加载订单
	ListAll(ctx context.Context, withOrders bool) ([]*User, error)
	// ListByOrderTotalAbove 返回至少有一笔订单金额大于 threshold 的用户（去重）
	ListByOrderTotalAbove(ctx context.Context, threshold float64) ([]*User, error)
	// Upsert 按邮箱插入，已存在时回填已有记录
	Upsert(ctx context.Context, u *User) error
}
