package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	repoCountWarnThreshold = 50
	gitSizeWarnThreshold   = int64(1 << 30) // 1GB
)

// CheckBasePath 检查扫描根目录是否存在、是目录且可读。
func CheckBasePath(base string) error {
	basePath, err := normalizePath(base)
	if err != nil {
		return err
	}

	st, err := os.Stat(basePath)
	if err != nil {
		return fmt.Errorf("cannot access base path: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("base path is not a directory: %s", basePath)
	}
	if _, err := os.ReadDir(basePath); err != nil {
		return fmt.Errorf("cannot list base path: %w", err)
	}
	return nil
}

// CheckPermissions 检查仓库读取权限（通过读取 .git/HEAD）。
func CheckPermissions(repoPath string) error {
	headPath := filepath.Join(repoPath, ".git", "HEAD")
	f, err := os.Open(headPath)
	if err != nil {
		return fmt.Errorf("cannot read .git/HEAD: %w", err)
	}
	_ = f.Close()
	return nil
}

// CheckPerformance 检查性能预警项。
func CheckPerformance(repos []string) []string {
	warnings := make([]string, 0)

	if len(repos) > repoCountWarnThreshold {
		warnings = append(warnings, fmt.Sprintf("large number of repos (%d) may slow down scanning", len(repos)))
	}

	for _, repoPath := range repos {
		size, err := getRepoSize(repoPath)
		if err != nil {
			continue
		}
		if size > gitSizeWarnThreshold {
			warnings = append(warnings, fmt.Sprintf("%s is large (%.1f GB), may be slow", repoPath, float64(size)/float64(1<<30)))
		}
	}

	return warnings
}

func getRepoSize(repoPath string) (int64, error) {
	gitPath := filepath.Join(repoPath, ".git")
	var size int64

	err := filepath.Walk(gitPath, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}
