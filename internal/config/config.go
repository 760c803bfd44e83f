package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultBasePath = "~/code"
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 1899
	DefaultTitle    = "GIT LOCAL"
	DefaultLogLevel = "info"
	DefaultEditor   = "code"
)

// envPrefix 是环境变量覆盖的前缀，如 GIT_LOCAL_BASE_PATH。
const envPrefix = "GIT_LOCAL"

type Config struct {
	BasePath string
	Host     string
	Port     int
	Title    string
	LogLevel string

	// 打开仓库的外部命令，留空时由 launcher 按平台取默认值。
	EditorCommand   string
	TerminalCommand string
	FilesCommand    string
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-local"), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func Load() (Config, error) {
	configFile, err := File()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("base_path", DefaultBasePath)
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("title", DefaultTitle)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("editor_command", DefaultEditor)
	v.SetDefault("terminal_command", "")
	v.SetDefault("files_command", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	basePath, err := ExpandPath(v.GetString("base_path"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		BasePath:        basePath,
		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		Title:           v.GetString("title"),
		LogLevel:        v.GetString("log_level"),
		EditorCommand:   v.GetString("editor_command"),
		TerminalCommand: v.GetString("terminal_command"),
		FilesCommand:    v.GetString("files_command"),
	}, nil
}

func Save(config Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("base_path", config.BasePath)
	v.Set("host", config.Host)
	v.Set("port", config.Port)
	v.Set("title", config.Title)
	v.Set("log_level", config.LogLevel)
	v.Set("editor_command", config.EditorCommand)
	v.Set("terminal_command", config.TerminalCommand)
	v.Set("files_command", config.FilesCommand)

	return v.WriteConfigAs(configFile)
}

// ExpandPath 标准化扫描根目录：
// 去除首尾空白、展开 ~ 为用户主目录、转换为绝对路径并清理。
func ExpandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("base_path must not be empty")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// ValidateConfig 检查配置合法性，返回问题列表（空表示没有问题）。
func ValidateConfig(cfg *Config) []string {
	issues := make([]string, 0)

	if cfg.BasePath == "" {
		issues = append(issues, "base_path must not be empty")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		issues = append(issues, fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port))
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		issues = append(issues, fmt.Sprintf("unknown log_level %q", cfg.LogLevel))
	}

	return issues
}
