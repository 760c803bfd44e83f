package repo

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// maxConcurrency 是并发检查候选目录的最大数量，默认为 CPU 核心数。
var maxConcurrency = runtime.NumCPU()

// Scan 枚举 base 下的一级子目录并提取其中 Git 仓库的元数据。
// 隐藏目录（以 . 开头）和非仓库目录被静默跳过。
// 结果按最近提交时间降序排列，最活跃的仓库排在最前面。
// base 不存在或不可读时直接返回文件系统错误。
func Scan(base string) ([]Info, error) {
	basePath, err := normalizePath(base)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		candidates = append(candidates, filepath.Join(basePath, entry.Name()))
	}

	bar := newScanProgressBar(len(candidates))
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	// 并发控制和结果聚合
	var (
		wg    sync.WaitGroup // 等待所有 goroutine 完成
		mu    sync.Mutex     // 保护 repos 的写入
		pmu   sync.Mutex     // 保护进度条更新
		repos []Info
	)

	now := time.Now()
	sem := make(chan struct{}, maxConcurrency)

	for _, path := range candidates {
		wg.Add(1)
		go func(path string) {
			sem <- struct{}{}        // 获取信号量
			defer func() { <-sem }() // 释放信号量
			defer wg.Done()
			defer func() {
				if bar == nil {
					return
				}
				pmu.Lock()
				_ = bar.Add(1)
				pmu.Unlock()
			}()

			info, ok := Inspect(path, now)
			if !ok {
				return
			}

			mu.Lock()
			repos = append(repos, *info)
			mu.Unlock()
		}(path)
	}

	wg.Wait()

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].LastCommitDate.After(repos[j].LastCommitDate)
	})

	return repos, nil
}

// newScanProgressBar 创建扫描进度条。
// 仅当候选目录数量 > 1 且在终端环境下才显示。
func newScanProgressBar(total int) *progressbar.ProgressBar {
	if total <= 1 {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("scanning repositories"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}

// normalizePath 标准化路径：
// 1. 去除首尾空白
// 2. 展开 ~ 为用户主目录
// 3. 转换为绝对路径并清理
func normalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
