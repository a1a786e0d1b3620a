package server

import (
	"gorm.io/gorm"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/repository/mysql"
	"github.com/example/storefront/internal/service"
)

// Services HTTP 层依赖的业务服务
type Services struct {
	Products  *service.ProductService
	Cart      *service.CartService
	Analytics *service.AnalyticsService
	Monitor   *service.Monitor
}

// NewServices 基于数据库连接装配仓储与服务。
// cache 与 publisher 可以为 nil，分别表示不使用 Redis 缓存、不发布订单事件。
func NewServices(db *gorm.DB, cache product.Cache, publisher service.EventPublisher, cfg *config.CartConfig) *Services {
	productRepo := mysql.NewProductRepository(db)
	userRepo := mysql.NewUserRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	cartRepo := mysql.NewCartRepository(db)

	return &Services{
		Products:  service.NewProductService(productRepo, cache),
		Cart:      service.NewCartService(cartRepo, productRepo, cfg.DefaultSession),
		Analytics: service.NewAnalyticsService(userRepo, orderRepo, publisher),
		Monitor:   service.GetMonitor(),
	}
}
