package cmd

import (
	"strings"

	"git-local/internal/config"

	"github.com/spf13/cobra"
)

// loadConfig 执行各命令共同的初始化：加载配置，
// 命令行显式指定了扫描根目录时覆盖配置里的值。
func loadConfig(cmd *cobra.Command, baseOverride string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if strings.TrimSpace(baseOverride) != "" {
		base, err := config.ExpandPath(baseOverride)
		if err != nil {
			return config.Config{}, err
		}
		cfg.BasePath = base
	}

	return cfg, nil
}
