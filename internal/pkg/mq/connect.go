// internal/pkg/mq/connect.go
package mq

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/logger"
)

// ConnectPolicy 定义连接重试策略。发布侧与消费侧各自持有独立的策略实例。
type ConnectPolicy struct {
	MaxAttempts int
	BackoffBase time.Duration
}

// Backoff 返回第 attempt 次（从 0 计）失败后的等待时长，线性递增: base * (attempt+1)。
func (p ConnectPolicy) Backoff(attempt int) time.Duration {
	return p.BackoffBase * time.Duration(attempt+1)
}

// DialFunc 建立一次到 broker 的连接。每次尝试都必须返回全新的连接对象。
type DialFunc func(ctx context.Context, target string) (*kafka.Conn, error)

// Connector 按退避策略连接消息通道。重试耗尽即为致命错误，由调用方终止进程。
type Connector struct {
	Target string
	Policy ConnectPolicy
	Dial   DialFunc

	sleep func(time.Duration)
}

// NewConnector 创建一个使用默认 Kafka 拨号的连接器。
func NewConnector(target string, policy ConnectPolicy) *Connector {
	return &Connector{
		Target: target,
		Policy: policy,
		Dial: func(ctx context.Context, target string) (*kafka.Conn, error) {
			return kafka.DialContext(ctx, "tcp", target)
		},
		sleep: time.Sleep,
	}
}

// Connect 依次尝试建立连接，每次失败后等待 Backoff(attempt) 再重试。
// MaxAttempts 次全部失败后返回错误，不再继续尝试。
func (c *Connector) Connect(ctx context.Context) (*kafka.Conn, error) {
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	var lastErr error
	for attempt := 0; attempt < c.Policy.MaxAttempts; attempt++ {
		conn, err := c.Dial(ctx, c.Target)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		wait := c.Policy.Backoff(attempt)
		logger.Ctx(ctx).Warn().
			Str("target", c.Target).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Err(err).
			Msg("broker not ready, retrying")
		c.sleep(wait)
	}
	return nil, errors.Wrapf(lastErr, "could not connect to broker %s after %d attempts", c.Target, c.Policy.MaxAttempts)
}

// EnsureTopic 声明主题，已存在时为幂等空操作。等价于启动时的 queue_declare。
func EnsureTopic(conn *kafka.Conn, topic string) error {
	err := conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		return errors.Wrapf(err, "could not ensure topic %s", topic)
	}
	return nil
}
