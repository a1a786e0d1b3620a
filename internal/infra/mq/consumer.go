package mq

import (
	"context"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler 处理单条消息；返回 requeue=true 时消息重新入队
type Handler func(ctx context.Context, d amqp.Delivery) (requeue bool, err error)

// Consume 手动确认模式消费队列，直到 ctx 取消或 channel 关闭
func Consume(ctx context.Context, conn *amqp.Connection, queue string, handle Handler) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "open channel")
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare queue %s", queue)
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrapf(err, "consume %s", queue)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			dispatch(ctx, d, handle)
		}
	}
}

// Acknowledger 决定消息的确认方式，amqp.Delivery 已实现
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func dispatch(ctx context.Context, d amqp.Delivery, handle Handler) {
	requeue, err := handle(ctx, d)
	settle(&d, d.MessageId, requeue, err)
}

func settle(ack Acknowledger, messageID string, requeue bool, err error) {
	if err != nil {
		zap.L().Warn("handle message failed",
			zap.String("message_id", messageID),
			zap.Bool("requeue", requeue),
			zap.Error(err))
		if nackErr := ack.Nack(false, requeue); nackErr != nil {
			zap.L().Error("failed to nack message", zap.Error(nackErr))
		}
		return
	}
	if ackErr := ack.Ack(false); ackErr != nil {
		zap.L().Error("failed to ack message", zap.Error(ackErr))
	}
}
