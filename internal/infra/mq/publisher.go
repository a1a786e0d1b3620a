package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel 发布所需的最小 channel 能力，便于测试替换
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher 把事件以 JSON 写入持久化队列
type Publisher struct {
	open  func() (Channel, error)
	queue string
}

// NewPublisher 基于连接创建发布者，每次发布使用独立 channel
func NewPublisher(conn *amqp.Connection, queue string) *Publisher {
	return NewPublisherWithChannel(func() (Channel, error) {
		return conn.Channel()
	}, queue)
}

func NewPublisherWithChannel(open func() (Channel, error), queue string) *Publisher {
	return &Publisher{open: open, queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}

	ch, err := p.open()
	if err != nil {
		return errors.Wrap(err, "open channel")
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare queue %s", p.queue)
	}

	err = ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	return errors.Wrapf(err, "publish to %s", p.queue)
}
