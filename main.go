// git-local 是一个本地 Git 仓库仪表盘：扫描指定目录下的仓库，
// 展示分支、脏状态和最近提交，并支持在编辑器、终端或文件管理器中打开。
package main

import (
	"git-local/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
