package repo

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Inspect 尝试把目录当作 Git 仓库打开并提取元数据。
// 目录不是有效仓库时返回 (nil, false)，这是预期的分类结果而不是错误。
// 打开成功时总是返回填充完整的 Info：游离 HEAD、空仓库、无远端
// 等缺失状态一律用占位值兜底，不向上传播错误。
// now 同时用作相对时间的基准和空仓库的提交时间兜底值。
func Inspect(path string, now time.Time) (*Info, bool) {
	r, err := git.PlainOpen(path)
	if err != nil {
		return nil, false
	}

	info := &Info{
		Name: filepath.Base(path),
		Path: path,
	}

	resolveHead(r, info, now)
	info.IsDirty, info.DirtyCount = dirtyState(r)
	info.BranchCount = countBranches(r)
	info.RemoteURL = remoteURL(r)
	info.detectMarkers(path)

	return info, true
}

// resolveHead 解析当前分支和最近一次提交。
// 空仓库（HEAD 尚未指向任何提交）使用占位信息，并把提交时间
// 设为 now，这会让它排在扫描结果最前面。
func resolveHead(r *git.Repository, info *Info, now time.Time) {
	head, err := r.Head()
	if err != nil {
		// HEAD 无法解析，通常是没有任何提交的新仓库。
		// 分支名从符号引用里读取（如 refs/heads/main）。
		info.Branch = unbornBranch(r)
		info.LastCommitMessage = NoCommitsMessage
		info.LastCommitDate = now
		info.LastCommitRelative = NoCommitsRelative
		return
	}

	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Branch = DetachedBranch
	}

	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		info.LastCommitMessage = NoCommitsMessage
		info.LastCommitDate = now
		info.LastCommitRelative = NoCommitsRelative
		return
	}

	info.LastCommitMessage = firstLine(commit.Message)
	info.LastCommitDate = commit.Author.When
	info.LastCommitRelative = RelativeTime(commit.Author.When, now)
}

// unbornBranch 读取未解析的符号 HEAD，取出将要诞生的分支名。
func unbornBranch(r *git.Repository) string {
	ref, err := r.Reference(plumbing.HEAD, false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return DetachedBranch
	}
	return ref.Target().Short()
}

// dirtyState 比较工作区与索引，统计脏文件数量。
// 计数 = 已跟踪文件的未提交修改 + 未跟踪文件，两组独立相加。
// 无法获取状态时（如裸仓库）视为干净。
func dirtyState(r *git.Repository) (bool, int) {
	wt, err := r.Worktree()
	if err != nil {
		return false, 0
	}
	status, err := wt.Status()
	if err != nil {
		return false, 0
	}

	count := 0
	for _, st := range status {
		if st.Worktree == git.Untracked {
			count++
			continue
		}
		if st.Worktree != git.Unmodified {
			count++
		}
	}

	return !status.IsClean(), count
}

// countBranches 统计本地分支数量。
func countBranches(r *git.Repository) int {
	iter, err := r.Branches()
	if err != nil {
		return 0
	}
	defer iter.Close()

	count := 0
	_ = iter.ForEach(func(*plumbing.Reference) error {
		count++
		return nil
	})
	return count
}

// remoteURL 返回主远端的 URL，优先选择 origin。
// 没有配置远端时返回空字符串。
func remoteURL(r *git.Repository) string {
	remotes, err := r.Remotes()
	if err != nil || len(remotes) == 0 {
		return ""
	}

	primary := remotes[0]
	for _, remote := range remotes {
		if remote.Config().Name == "origin" {
			primary = remote
			break
		}
	}

	urls := primary.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// firstLine 取提交信息的首行并截断到最大长度。
func firstLine(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	runes := []rune(line)
	if len(runes) > maxMessageLen {
		return string(runes[:maxMessageLen])
	}
	return line
}
