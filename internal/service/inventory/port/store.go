// internal/service/inventory/port/store.go
package port

import "context"

// StockStore 是每商品库存计数的出站端口。
//
// Reserve 的 读取-惰性初始化-检查-扣减 序列必须由存储端的单一原子原语实现。
// 多个服务实例会各自独立调用，应用侧不允许出现任何读-改-写序列，
// 也不允许用进程内锁代替存储端原子性。
type StockStore interface {
	// Reserve 原子地尝试扣减 quantity。商品首次出现时先初始化为 defaultStock。
	// 库存充足时扣减并返回 (扣减后余量, true)；不足时不做任何变更，
	// 返回 (当前余量, false)。quantity 为 0 是合法的空操作。
	Reserve(ctx context.Context, item string, quantity, defaultStock int64) (remaining int64, ok bool, err error)

	// CurrentStock 读取当前库存。未见过的商品返回 found=false，不做惰性初始化。
	CurrentStock(ctx context.Context, item string) (stock int64, found bool, err error)
}
