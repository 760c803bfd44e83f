// Package repo 负责扫描本地目录、识别 Git 仓库并提取展示所需的元数据。
package repo

import (
	"os"
	"path/filepath"
	"time"
)

// 无法正常解析时使用的兜底值。
const (
	// DetachedBranch 是 HEAD 处于游离状态时的分支占位符。
	DetachedBranch = "HEAD detached"
	// NoCommitsMessage 是空仓库（没有任何提交）的提交信息占位符。
	NoCommitsMessage = "No commits"
	// NoCommitsRelative 是空仓库的相对时间占位符，不走相对时间计算。
	NoCommitsRelative = "-"
)

// maxMessageLen 是最近提交信息首行的最大长度（按字符截断）。
const maxMessageLen = 60

// Info 是一次扫描中单个 Git 仓库的元数据快照。
// 构造完成后不再修改，新一轮扫描会生成全新的实例。
type Info struct {
	Name               string    `json:"name"`
	Path               string    `json:"path"`
	Branch             string    `json:"branch"`
	IsDirty            bool      `json:"is_dirty"`
	DirtyCount         int       `json:"dirty_count"`
	BranchCount        int       `json:"branch_count"`
	LastCommitMessage  string    `json:"last_commit_message"`
	LastCommitDate     time.Time `json:"last_commit_date"`
	LastCommitRelative string    `json:"last_commit_relative"`
	RemoteURL          string    `json:"remote_url,omitempty"`

	// 项目类型标记，各自独立，由仓库根目录下的标志文件判定。
	IsDdev   bool `json:"is_ddev"`
	IsDocker bool `json:"is_docker"`
	IsPython bool `json:"is_python"`
	IsNode   bool `json:"is_node"`
	IsPhp    bool `json:"is_php"`
	IsGo     bool `json:"is_go"`
	IsRust   bool `json:"is_rust"`
}

// dockerMarkers 等是各项目类型对应的标志文件名，命中任意一个即判定为该类型。
var (
	dockerMarkers = []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml", "Dockerfile"}
	pythonMarkers = []string{"pyproject.toml", "setup.py", "requirements.txt", "Pipfile"}
)

// detectMarkers 检测仓库根目录下的项目类型标志。
// 所有检查都会执行，互相独立，不会短路。
func (i *Info) detectMarkers(path string) {
	i.IsDdev = pathExists(filepath.Join(path, ".ddev"))
	i.IsDocker = anyExists(path, dockerMarkers)
	i.IsPython = anyExists(path, pythonMarkers)
	i.IsNode = pathExists(filepath.Join(path, "package.json"))
	i.IsPhp = pathExists(filepath.Join(path, "composer.json"))
	i.IsGo = pathExists(filepath.Join(path, "go.mod"))
	i.IsRust = pathExists(filepath.Join(path, "Cargo.toml"))
}

func anyExists(dir string, names []string) bool {
	found := false
	for _, name := range names {
		if pathExists(filepath.Join(dir, name)) {
			found = true
		}
	}
	return found
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
