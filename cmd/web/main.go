package main

import (
	"log"
	"os"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/infra/mq"
	"github.com/example/storefront/internal/infra/redis"
	"github.com/example/storefront/internal/logger"
	"github.com/example/storefront/internal/repository/mysql"
	"github.com/example/storefront/internal/server"
	"github.com/example/storefront/internal/service"
)

func main() {
	dir := os.Getenv("STOREFRONT_CONFIG_DIR")
	if dir == "" {
		dir = "./config"
	}
	cfg, err := config.Load(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	l, err := logger.Init(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer l.Sync()

	db := mysql.Init(&cfg.MySQL)

	// 未配置 Redis / MQ 时对应接口保持为 nil
	var cache product.Cache
	if client := redis.Init(&cfg.Redis); client != nil {
		cache = redis.NewProductCache(client, time.Duration(cfg.Redis.ProductTTLSeconds)*time.Second)
	}
	var publisher service.EventPublisher
	if conn := mq.Init(&cfg.RabbitMQ); conn != nil {
		defer conn.Close()
		publisher = mq.NewPublisher(conn, cfg.RabbitMQ.OrderEventsQueue)
	}

	svc := server.NewServices(db, cache, publisher, &cfg.Cart)

	app := iris.New()
	server.RegisterRoutes(app, svc, &cfg.Cart)
	server.RegisterAdminRoutes(app, svc)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening",
		zap.String("addr", addr),
		zap.Bool("product_cache", cache != nil),
		zap.Bool("order_events", publisher != nil))
	if err := app.Listen(addr, iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
		zap.L().Fatal("failed to run web server", zap.Error(err))
	}
}
