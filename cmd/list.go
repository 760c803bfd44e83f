package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"git-local/internal/repo"

	"github.com/spf13/cobra"
)

var listBase string

// listCmd 实现 list 子命令，一次性扫描并在终端打印仓库列表。
// 用法: git-local list [--base DIR]
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Scan the base directory and list repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, listBase)
		if err != nil {
			return err
		}

		repos, err := repo.Scan(cfg.BasePath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(repos) == 0 {
			fmt.Fprintln(out, "no repositories found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBRANCH\tSTATE\tLAST COMMIT\tMESSAGE\tTAGS")
		for _, r := range repos {
			state := "clean"
			if r.IsDirty {
				state = fmt.Sprintf("dirty (%d)", r.DirtyCount)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Name, r.Branch, state, r.LastCommitRelative, r.LastCommitMessage, strings.Join(projectTags(r), ","))
		}
		return w.Flush()
	},
}

// projectTags 收集仓库命中的项目类型标记。
func projectTags(r repo.Info) []string {
	tags := make([]string, 0, 7)
	for _, t := range []struct {
		set  bool
		name string
	}{
		{r.IsDdev, "ddev"},
		{r.IsDocker, "docker"},
		{r.IsPython, "python"},
		{r.IsNode, "node"},
		{r.IsPhp, "php"},
		{r.IsGo, "go"},
		{r.IsRust, "rust"},
	} {
		if t.set {
			tags = append(tags, t.name)
		}
	}
	return tags
}

func init() {
	listCmd.Flags().StringVarP(&listBase, "base", "b", "", "Base directory to scan (overrides config)")

	rootCmd.AddCommand(listCmd)
}
