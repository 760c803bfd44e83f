package cmd

import (
	"fmt"
	"strings"

	"git-local/internal/cache"
	"git-local/internal/config"
	"git-local/internal/launcher"
	"git-local/internal/logging"
	"git-local/internal/repo"
	"git-local/internal/server"

	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
	serveBase string
)

// serveCmd 实现 serve 子命令，启动仪表盘 Web 服务。
// 用法: git-local serve [--host HOST] [--port PORT] [--base DIR]
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the repository dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, serveBase)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		if issues := config.ValidateConfig(&cfg); len(issues) > 0 {
			return fmt.Errorf("invalid configuration:\n   - %s", strings.Join(issues, "\n   - "))
		}

		log := logging.Setup(cfg.LogLevel)

		// 缓存持有整个进程生命周期，所有请求共享同一个实例。
		scanCache := cache.New(repo.Scan)
		opener := launcher.New(cfg.EditorCommand, cfg.TerminalCommand, cfg.FilesCommand)

		srv, err := server.New(cfg, scanCache, opener, log)
		if err != nil {
			return err
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "Listen address")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Listen port")
	serveCmd.Flags().StringVarP(&serveBase, "base", "b", "", "Base directory to scan (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
