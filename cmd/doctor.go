package cmd

import (
	"fmt"
	"io"

	"git-local/internal/config"
	"git-local/internal/repo"

	"github.com/spf13/cobra"
)

var doctorBase string

// doctorCmd 实现 doctor 子命令，一站式诊断环境和配置问题。
// 依次执行 4 项检查：配置合法性、扫描根目录可访问性、仓库读权限、性能预警。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: git-local doctor
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment and configuration issues",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorBase, "base", "b", "", "Base directory to scan (overrides config)")

	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 是 doctor 命令的核心逻辑，按顺序执行 4 项诊断检查：
//  1. 配置合法性（base_path、port、log_level）
//  2. 扫描根目录可访问性（存在、是目录、可读）
//  3. 仓库读权限（.git/HEAD 可读）
//  4. 性能预警（仓库数量 >50 或 .git 体积 >1GB）
//
// 输出使用 ✅/⚠️/❌ 分类显示，有错误时返回 error（exit 非零）。
func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置合法性检查
	cfg, cfgErr := loadConfig(cmd, doctorBase)
	if cfgErr != nil {
		fmt.Fprintf(out, "❌ Config: %v\n", cfgErr)
		return fmt.Errorf("doctor found issues")
	}
	issues := config.ValidateConfig(&cfg)
	if len(issues) == 0 {
		fmt.Fprintln(out, "✅ Config: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Config: %d issue(s)\n", len(issues))
		printLines(out, issues)
	}

	// 2. 扫描根目录可访问性检查
	if err := repo.CheckBasePath(cfg.BasePath); err != nil {
		fmt.Fprintf(out, "❌ Base path: %v\n", err)
		fmt.Fprintln(out, "⚠️  Repositories: skipped (base path is inaccessible)")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Fprintf(out, "✅ Base path: %s\n", cfg.BasePath)

	// 3. 仓库扫描和读权限检查
	repos, scanErr := repo.Scan(cfg.BasePath)
	if scanErr != nil {
		hasError = true
		fmt.Fprintf(out, "❌ Repositories: %v\n", scanErr)
	} else if len(repos) == 0 {
		fmt.Fprintln(out, "⚠️  Repositories: none found")
	} else {
		permissionErrors := make([]string, 0)
		repoPaths := make([]string, 0, len(repos))
		for _, r := range repos {
			repoPaths = append(repoPaths, r.Path)
			if err := repo.CheckPermissions(r.Path); err != nil {
				permissionErrors = append(permissionErrors, fmt.Sprintf("%s: %v", r.Path, err))
			}
		}
		if len(permissionErrors) == 0 {
			fmt.Fprintf(out, "✅ Repositories: %d found, permissions OK\n", len(repos))
		} else {
			hasError = true
			fmt.Fprintf(out, "❌ Repositories: %d permission issue(s)\n", len(permissionErrors))
			printLines(out, permissionErrors)
		}

		// 4. 性能预警（仓库数量、.git 体积）
		performanceWarnings := repo.CheckPerformance(repoPaths)
		if len(performanceWarnings) == 0 {
			fmt.Fprintln(out, "✅ Performance: OK")
		} else {
			fmt.Fprintf(out, "⚠️  Performance: %d warning(s)\n", len(performanceWarnings))
			printLines(out, performanceWarnings)
		}
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
