// Package config 提供 git-local 的配置管理功能。
//
// 配置文件存储在 ~/.config/git-local/config.yaml，使用 YAML 格式。
// 支持的配置项包括扫描根目录、监听地址、打开仓库的外部命令等，
// 均可通过 GIT_LOCAL_ 前缀的环境变量覆盖。
package config
