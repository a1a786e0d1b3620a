package mysql

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/datamodels/cart"
	"github.com/example/storefront/internal/datamodels/order"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移表结构
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = Open(mysql.Open(cfg.DSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			zap.L().Fatal("failed to connect mysql", zap.Error(err))
		}

		sqlDB, err := db.DB()
		if err != nil {
			zap.L().Fatal("failed to get sql.DB", zap.Error(err))
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	})
	return db
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}

// Open 使用任意方言打开连接并迁移，测试中传入 sqlite 方言
func Open(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate 自动迁移全部表结构
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&product.Product{},
		&user.User{},
		&order.Order{},
		&order.Item{},
		&cart.Line{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
