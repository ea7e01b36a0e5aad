// Package worker 消费 RabbitMQ 队列的后台任务
package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/sheets"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

const (
	// attemptHeader 消息已失败的次数
	attemptHeader = "x-attempt"

	DefaultMaxAttempts = 5
	DefaultBackoff     = 2 * time.Second
)

// Delivery 消息确认，amqp.Delivery 实现了它
type Delivery interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Message 一条待处理的消息
type Message struct {
	Body    []byte
	Attempt int
}

// ApplyFunc 执行一条消息
type ApplyFunc func(ctx context.Context, body []byte) error

// Retrier 把失败的消息带上新的次数重新投递到队尾
type Retrier interface {
	Retry(ctx context.Context, queue string, body []byte, attempt int) error
}

// Consumer 手动确认的队列消费者
// 成功 Ack；消息格式错误或表格接口的永久错误直接丢弃；
// 临时错误退避后重新投递，超过 maxAttempts 次后丢弃。
type Consumer struct {
	queue       string
	apply       ApplyFunc
	permanent   func(error) bool
	retry       Retrier
	maxAttempts int
	backoff     time.Duration
}

// NewConsumer 创建消费者
func NewConsumer(queue string, apply ApplyFunc) *Consumer {
	return &Consumer{
		queue:       queue,
		apply:       apply,
		permanent:   sheets.IsPermanent,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
}

// NewSheetsSync 把 sheets_sync 队列中的表单追加到 Google Sheets
func NewSheetsSync(svc *service.SheetsService) *Consumer {
	return NewConsumer(mq.QueueSheetsSync, svc.Apply)
}

// NewOrderSync 把 order_placed 事件追加到 Orders 表
func NewOrderSync(svc *service.SheetsService) *Consumer {
	return NewConsumer(mq.QueueOrderPlaced, svc.ApplyOrder)
}

// Queue 消费的队列名
func (c *Consumer) Queue() string {
	return c.queue
}

func (c *Consumer) drop(msg Message, d Delivery, reason string, err error) {
	service.GetMonitor().RecordWorkerFailed()
	zap.L().Warn(reason,
		zap.String("queue", c.queue),
		zap.Int("attempt", msg.Attempt),
		zap.ByteString("body", msg.Body),
		zap.Error(err))
	_ = d.Nack(false, false)
}

// Handle 处理一条消息
func (c *Consumer) Handle(ctx context.Context, msg Message, d Delivery) {
	err := c.apply(ctx, msg.Body)
	switch {
	case err == nil:
		service.GetMonitor().RecordWorkerProcessed()
		if err := d.Ack(false); err != nil {
			zap.L().Error("ack failed", zap.String("queue", c.queue), zap.Error(err))
		}
		return
	case service.IsKind(err, service.KindValidation):
		c.drop(msg, d, "drop invalid message", err)
		return
	case c.permanent != nil && c.permanent(err):
		c.drop(msg, d, "drop message after permanent failure", err)
		return
	}

	next := msg.Attempt + 1
	if next >= c.maxAttempts || c.retry == nil {
		c.drop(msg, d, "drop message after retries", err)
		return
	}
	service.GetMonitor().RecordWorkerFailed()
	zap.L().Error("message failed, retry later",
		zap.String("queue", c.queue), zap.Int("attempt", next), zap.Error(err))

	select {
	case <-ctx.Done():
		_ = d.Nack(false, true)
		return
	case <-time.After(c.backoff * time.Duration(next)):
	}
	if err := c.retry.Retry(ctx, c.queue, msg.Body, next); err != nil {
		zap.L().Error("republish failed, requeue", zap.String("queue", c.queue), zap.Error(err))
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

// Run 手动确认模式消费，每次只取一条；ctx 取消时返回 nil
func (c *Consumer) Run(ctx context.Context, ch *amqp.Channel) error {
	if err := mq.DeclareQueue(ch, c.queue); err != nil {
		return errors.Wrap(err, "declare queue")
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return errors.Wrap(err, "set qos")
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "consume")
	}
	if c.retry == nil {
		c.retry = channelRetrier{ch: ch}
	}

	zap.L().Info("worker started, waiting for messages...", zap.String("queue", c.queue))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.Handle(ctx, Message{Body: d.Body, Attempt: attemptOf(d.Headers)}, d)
		}
	}
}

// channelRetrier 在消费用的 channel 上重新发布
type channelRetrier struct {
	ch *amqp.Channel
}

func (r channelRetrier) Retry(ctx context.Context, queue string, body []byte, attempt int) error {
	return r.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      amqp.Table{attemptHeader: int32(attempt)},
		Body:         body,
	})
}

func attemptOf(h amqp.Table) int {
	switch v := h[attemptHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}
