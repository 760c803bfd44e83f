package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"git-local/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingScan 返回一个统计调用次数的扫描函数。
func countingScan(result []repo.Info) (ScanFunc, *int) {
	calls := 0
	return func(base string) ([]repo.Info, error) {
		calls++
		return result, nil
	}, &calls
}

func fixedClock(c *Cache, at *time.Time) {
	c.now = func() time.Time { return *at }
}

func TestCache_FreshHitWithinTTL(t *testing.T) {
	want := []repo.Info{{Name: "repo1"}, {Name: "repo2"}}
	scan, calls := countingScan(want)
	c := New(scan)

	now := time.Now()
	fixedClock(c, &now)

	first, err := c.Get("/base", false)
	require.NoError(t, err)
	assert.Equal(t, want, first)
	assert.Equal(t, 1, *calls)

	// TTL 内的第二次请求直接复用快照，不再扫描
	now = now.Add(TTL - time.Second)
	second, err := c.Get("/base", false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, *calls)
}

func TestCache_ExpiredEntryRescans(t *testing.T) {
	scan, calls := countingScan([]repo.Info{{Name: "repo1"}})
	c := New(scan)

	now := time.Now()
	fixedClock(c, &now)

	_, err := c.Get("/base", false)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	now = now.Add(TTL)
	_, err = c.Get("/base", false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestCache_ForceRefreshAlwaysScans(t *testing.T) {
	scan, calls := countingScan(nil)
	c := New(scan)

	_, err := c.Get("/base", true)
	require.NoError(t, err)
	_, err = c.Get("/base", true)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestCache_ClearForcesRescan(t *testing.T) {
	scan, calls := countingScan([]repo.Info{{Name: "repo1"}})
	c := New(scan)

	_, err := c.Get("/base", false)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	c.Clear()

	_, err = c.Get("/base", false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestCache_KeysAreIndependent(t *testing.T) {
	scan, calls := countingScan(nil)
	c := New(scan)

	_, err := c.Get("/base-a", false)
	require.NoError(t, err)
	_, err = c.Get("/base-b", false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)

	// 两个键各自命中缓存
	_, err = c.Get("/base-a", false)
	require.NoError(t, err)
	_, err = c.Get("/base-b", false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestCache_ScanErrorNotCached(t *testing.T) {
	scanErr := errors.New("base path vanished")
	calls := 0
	c := New(func(base string) ([]repo.Info, error) {
		calls++
		return nil, scanErr
	})

	_, err := c.Get("/base", false)
	require.ErrorIs(t, err, scanErr)

	// 失败不会留下缓存条目，下一次仍然扫描
	_, err = c.Get("/base", false)
	require.ErrorIs(t, err, scanErr)
	assert.Equal(t, 2, calls)
}

func TestCache_ConcurrentGet(t *testing.T) {
	c := New(func(base string) ([]repo.Info, error) {
		return []repo.Info{{Name: "repo1"}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(force bool) {
			defer wg.Done()
			repos, err := c.Get("/base", force)
			assert.NoError(t, err)
			assert.Len(t, repos, 1)
		}(i%4 == 0)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Clear()
		}()
	}
	wg.Wait()
}
