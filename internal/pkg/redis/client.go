// internal/pkg/redis/client.go
package redis

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Client 在 go-redis 之上附加了一个命名 Lua 脚本注册表。
// 脚本通过 EVALSHA 执行，缓存未命中时自动回退到 EVAL。
type Client struct {
	rdb goredis.UniversalClient

	mu      sync.RWMutex
	scripts map[string]*goredis.Script
}

// NewClient 依据逗号分隔的地址列表创建客户端，单地址为单机模式，多地址为集群模式。
func NewClient(addrs string) (*Client, error) {
	list := strings.Split(addrs, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	rdb := goredis.NewUniversalClient(&goredis.UniversalOptions{Addrs: list})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrapf(err, "could not ping redis at %s", addrs)
	}
	return &Client{rdb: rdb, scripts: make(map[string]*goredis.Script)}, nil
}

// GetClient 暴露底层客户端，供不经过脚本注册表的直接命令使用。
func (c *Client) GetClient() goredis.UniversalClient {
	return c.rdb
}

// LoadScriptFromContent 注册一个命名脚本并预加载到服务端脚本缓存。
func (c *Client) LoadScriptFromContent(name, content string) error {
	script := goredis.NewScript(content)
	if err := script.Load(context.Background(), c.rdb).Err(); err != nil {
		return errors.Wrapf(err, "could not load script %s", name)
	}
	c.mu.Lock()
	c.scripts[name] = script
	c.mu.Unlock()
	return nil
}

// RunScript 执行一个已注册的脚本。
func (c *Client) RunScript(ctx context.Context, name string, keys []string, args ...interface{}) (interface{}, error) {
	c.mu.RLock()
	script, ok := c.scripts[name]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("script %s is not registered", name)
	}
	return script.Run(ctx, c.rdb, keys, args...).Result()
}

// GetInt64 读取一个整型键。键不存在时返回 ok=false 而非错误。
func (c *Client) GetInt64(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "could not read key %s", key)
	}
	return val, true, nil
}

// Close 关闭底层连接。
func (c *Client) Close() error {
	return c.rdb.Close()
}
