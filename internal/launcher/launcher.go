// Package launcher 负责在外部程序中打开仓库目录：
// 编辑器、终端、文件管理器。只负责启动进程，不等待结束。
package launcher

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Launcher struct {
	editor   []string
	terminal []string
	files    []string
}

// New 创建 Launcher。命令为空时按平台取默认值。
// 命令字符串按空白切分，首段为程序名，其余为前置参数，
// 仓库路径总是追加在最后。
func New(editorCmd, terminalCmd, filesCmd string) *Launcher {
	return &Launcher{
		editor:   splitCommand(editorCmd, defaultEditor()),
		terminal: splitCommand(terminalCmd, defaultTerminal()),
		files:    splitCommand(filesCmd, defaultFiles()),
	}
}

func (l *Launcher) OpenEditor(path string) error   { return start(l.editor, path) }
func (l *Launcher) OpenTerminal(path string) error { return start(l.terminal, path) }
func (l *Launcher) OpenFiles(path string) error    { return start(l.files, path) }

func start(cmd []string, path string) error {
	if len(cmd) == 0 {
		return fmt.Errorf("no command configured")
	}
	args := append(append([]string{}, cmd[1:]...), path)
	if err := exec.Command(cmd[0], args...).Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd[0], err)
	}
	return nil
}

func splitCommand(cmd string, fallback []string) []string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return fallback
	}
	return fields
}

func defaultEditor() []string {
	return []string{"code"}
}

func defaultTerminal() []string {
	if runtime.GOOS == "darwin" {
		return []string{"open", "-a", "Terminal"}
	}
	return []string{"x-terminal-emulator"}
}

func defaultFiles() []string {
	if runtime.GOOS == "darwin" {
		return []string{"open"}
	}
	return []string{"xdg-open"}
}
