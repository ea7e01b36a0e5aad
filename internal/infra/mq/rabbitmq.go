package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
)

const (
	// QueueOrderPlaced 下单成功事件
	QueueOrderPlaced = "order_placed"
	// QueueSheetsSync 需要追加到 Google Sheets 的表单
	QueueSheetsSync = "sheets_sync"
)

var (
	conn *amqp.Connection
	once sync.Once
)

// Init 初始化 RabbitMQ 连接
func Init(cfg *config.RabbitMQConfig) *amqp.Connection {
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

// Publisher 业务侧只依赖这个接口
type Publisher interface {
	Publish(ctx context.Context, queue string, v any) error
}

// AMQPPublisher 在一个 channel 上发送持久化 JSON 消息
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	declared map[string]bool
}

// NewPublisher 打开 channel
func NewPublisher(c *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := c.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}
	return &AMQPPublisher{ch: ch, declared: make(map[string]bool)}, nil
}

// DeclareQueue 声明持久化队列，生产者和消费者共用同一组参数
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.declared[queue] {
		if err := DeclareQueue(p.ch, queue); err != nil {
			return errors.Wrapf(err, "declare queue %s", queue)
		}
		p.declared[queue] = true
	}
	return p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Close 关闭 channel
func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}

// NopPublisher 未接入 MQ 时使用，消息直接丢弃
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, queue string, v any) error { return nil }
