package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/infra/mq"
	"github.com/example/storefront/internal/logger"
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

	conn := mq.Init(&cfg.RabbitMQ)
	if conn == nil {
		zap.L().Fatal("rabbitmq.url is empty, nothing to consume")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := cfg.RabbitMQ.OrderEventsQueue
	zap.L().Info("order worker started, waiting for messages...", zap.String("queue", queue))
	if err := mq.Consume(ctx, conn, queue, handleStatusChanged); err != nil {
		zap.L().Error("consumer stopped", zap.Error(err))
		return
	}
	zap.L().Info("order worker stopped")
}
