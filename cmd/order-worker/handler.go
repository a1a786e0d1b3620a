package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/datamodels/order"
)

// handleStatusChanged 处理订单状态批量变更事件。
// 消息格式错误时丢弃，不重新入队。
func handleStatusChanged(_ context.Context, d amqp.Delivery) (bool, error) {
	var evt order.StatusChangedEvent
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		return false, errors.Wrap(err, "decode order status event")
	}
	if evt.Status == "" || evt.UpdatedCount <= 0 {
		return false, errors.Errorf("malformed order status event: %s", d.Body)
	}

	zap.L().Info("orders promoted",
		zap.String("message_id", d.MessageId),
		zap.String("status", evt.Status),
		zap.Float64("min_total", evt.MinTotal),
		zap.Int64("updated_count", evt.UpdatedCount),
		zap.Time("occurred_at", evt.OccurredAt))
	return false, nil
}
