// Package testutil 提供基于内存 sqlite 的测试数据库与造数工具。
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/storefront/internal/datamodels/order"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/datamodels/user"
	"github.com/example/storefront/internal/repository/mysql"
)

// NewDB 每次返回独立的内存库，表结构与线上一致
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := mysql.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewFileDB 基于临时文件的 WAL 库，允许多个连接并发读写
func NewFileDB(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", path)
	db, err := mysql.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func CreateProduct(t testing.TB, db *gorm.DB, title string, price float64, category string) *product.Product {
	t.Helper()
	p := &product.Product{Title: title, Price: price, Category: category}
	require.NoError(t, db.WithContext(context.Background()).Create(p).Error)
	return p
}

func CreateUser(t testing.TB, db *gorm.DB, name, email string) *user.User {
	t.Helper()
	u := &user.User{Name: name, Email: email}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

func CreateOrder(t testing.TB, db *gorm.DB, userID int64, total float64, status string) *order.Order {
	t.Helper()
	o := &order.Order{UserID: userID, Total: total, Status: status}
	require.NoError(t, db.WithContext(context.Background()).Create(o).Error)
	return o
}

// OrderStatus 直接读库，绕开仓储
func OrderStatus(t testing.TB, db *gorm.DB, id int64) string {
	t.Helper()
	var o order.Order
	require.NoError(t, db.First(&o, id).Error)
	return o.Status
}
