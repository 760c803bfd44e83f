// Package cache 提供扫描结果的内存缓存，按扫描根目录做键，
// 在固定 TTL 内直接复用上一次的快照，避免每个请求都重新遍历文件系统。
package cache

import (
	"sync"
	"time"

	"git-local/internal/repo"
)

// TTL 是缓存快照的最大年龄，所有键共用这一个常量。
const TTL = 30 * time.Second

// ScanFunc 执行一次完整扫描，返回按最近提交时间降序的仓库列表。
type ScanFunc func(base string) ([]repo.Info, error)

// entry 是一个扫描根目录对应的缓存条目。
// 刷新时整体替换，不做逐字段合并。
type entry struct {
	fetchedAt time.Time
	repos     []repo.Info
}

// Cache 用互斥锁保护的映射包装扫描函数。
// 检查年龄和写回结果各自是原子操作，但扫描本身在锁外执行：
// 同一个键的两次并发刷新会都扫描一遍，后写的覆盖先写的。
// 扫描是对外部状态的幂等只读操作，这种竞争是可接受的。
type Cache struct {
	scan ScanFunc

	mu      sync.Mutex
	entries map[string]entry

	now func() time.Time // 测试时可替换
}

// New 创建一个包装 scan 的缓存。
func New(scan ScanFunc) *Cache {
	return &Cache{
		scan:    scan,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get 返回 base 的仓库列表。
// forceRefresh 为 false 且缓存条目仍在 TTL 内时直接返回存量快照，
// 否则执行完整扫描并覆盖存储。扫描失败时返回错误且不写缓存。
func (c *Cache) Get(base string, forceRefresh bool) ([]repo.Info, error) {
	if !forceRefresh {
		c.mu.Lock()
		e, ok := c.entries[base]
		fresh := ok && c.now().Sub(e.fetchedAt) < TTL
		c.mu.Unlock()

		if fresh {
			return e.repos, nil
		}
	}

	repos, err := c.scan(base)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[base] = entry{fetchedAt: c.now(), repos: repos}
	c.mu.Unlock()

	return repos, nil
}

// Clear 无条件丢弃所有缓存条目，之后的任何 Get 都会触发完整扫描。
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
