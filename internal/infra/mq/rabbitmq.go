package mq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/config"
)

var (
	conn *amqp.Connection
	once sync.Once
)

// Init 初始化 RabbitMQ 连接，未配置 URL 时返回 nil
func Init(cfg *config.RabbitMQConfig) *amqp.Connection {
	if cfg.URL == "" {
		return nil
	}
	once.Do(func() {
		c, err := amqp.Dial(cfg.URL)
		if err != nil {
			zap.L().Fatal("failed to connect rabbitmq", zap.Error(err))
		}
		conn = c
	})
	return conn
}

// Conn 获取 MQ 连接
func Conn() *amqp.Connection {
	return conn
}
