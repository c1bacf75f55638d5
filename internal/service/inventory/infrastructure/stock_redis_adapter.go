// internal/service/inventory/infrastructure/stock_redis_adapter.go
package infrastructure

import (
	"context"
	"fmt"
)

const reserveScriptName = "reserve_stock"

// insufficientStock 是 Lua 脚本在库存不足时返回的哨兵值。
const insufficientStock = -1

// ScriptRunner 是库存适配器对 Redis 客户端的最小依赖面。
// 由 internal/pkg/redis.Client 实现。
type ScriptRunner interface {
	LoadScriptFromContent(name, content string) error
	RunScript(ctx context.Context, name string, keys []string, args ...interface{}) (interface{}, error)
	GetInt64(ctx context.Context, key string) (int64, bool, error)
}

// StockRedisAdapter 是 port.StockStore 的 Redis 实现。
// 读取-初始化-检查-扣减 全部在一个 Lua 脚本内完成，Redis 串行执行脚本，
// 因此同一商品上的并发预占天然串行化。
type StockRedisAdapter struct {
	redisClient ScriptRunner
}

// NewStockRedisAdapter 创建库存适配器实例，创建时即加载所需脚本。
func NewStockRedisAdapter(redisClient ScriptRunner) (*StockRedisAdapter, error) {
	if err := redisClient.LoadScriptFromContent(reserveScriptName, reserveScript); err != nil {
		return nil, fmt.Errorf("failed to load critical reserve script: %w", err)
	}
	return &StockRedisAdapter{redisClient: redisClient}, nil
}

func stockKey(item string) string {
	return "stock:" + item
}

// Reserve 实现了原子预占逻辑。
func (a *StockRedisAdapter) Reserve(ctx context.Context, item string, quantity, defaultStock int64) (int64, bool, error) {
	result, err := a.redisClient.RunScript(ctx, reserveScriptName, []string{stockKey(item)}, quantity, defaultStock)
	if err != nil {
		return 0, false, fmt.Errorf("stock adapter failed to run script: %w", err)
	}

	remaining, ok := result.(int64)
	if !ok {
		return 0, false, fmt.Errorf("unexpected result type from Lua script: %T", result)
	}

	if remaining == insufficientStock {
		// 脚本已完成惰性初始化，键此时必然存在
		cur, found, err := a.redisClient.GetInt64(ctx, stockKey(item))
		if err != nil {
			return 0, false, err
		}
		if !found {
			cur = defaultStock
		}
		return cur, false, nil
	}
	return remaining, true, nil
}

// CurrentStock 读取当前库存，不触发初始化。
func (a *StockRedisAdapter) CurrentStock(ctx context.Context, item string) (int64, bool, error) {
	return a.redisClient.GetInt64(ctx, stockKey(item))
}

var reserveScript = `
-- KEYS[1]: 商品库存键, 例如: stock:widget
-- ARGV[1]: 本次预占数量
-- ARGV[2]: 首次出现时的默认初始库存

-- 1. 读取当前库存，缺失则惰性初始化
local cur = redis.call('GET', KEYS[1])
if not cur then
    cur = ARGV[2]
    redis.call('SET', KEYS[1], cur)
end
cur = tonumber(cur)

-- 2. 检查库存是否充足
local qty = tonumber(ARGV[1])
if cur < qty then
    return -1
end

-- 3. 扣减并返回剩余量
return redis.call('DECRBY', KEYS[1], qty)
`
