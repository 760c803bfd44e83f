package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "code"), cfg.BasePath)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultEditor, cfg.EditorCommand)
}

func TestLoad_EnvOverride(t *testing.T) {
	home := t.TempDir()
	base := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GIT_LOCAL_BASE_PATH", base)
	t.Setenv("GIT_LOCAL_PORT", "9000")
	t.Setenv("GIT_LOCAL_HOST", "0.0.0.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(base), cfg.BasePath)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	want := Config{
		BasePath:      filepath.Join(home, "projects"),
		Host:          "127.0.0.1",
		Port:          2500,
		Title:         "MY REPOS",
		LogLevel:      "debug",
		EditorCommand: "subl",
	}
	require.NoError(t, Save(want))

	configFile, err := File()
	require.NoError(t, err)
	assert.FileExists(t, configFile)

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want.BasePath, got.BasePath)
	assert.Equal(t, want.Port, got.Port)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.LogLevel, got.LogLevel)
	assert.Equal(t, want.EditorCommand, got.EditorCommand)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("tilde expands to home", func(t *testing.T) {
		got, err := ExpandPath("~/code")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "code"), got)
	})

	t.Run("absolute path is cleaned", func(t *testing.T) {
		got, err := ExpandPath("/tmp//repos/.")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean(string(os.PathSeparator)+"tmp"+string(os.PathSeparator)+"repos"), got)
	})

	t.Run("empty path fails", func(t *testing.T) {
		_, err := ExpandPath("   ")
		require.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		issues := ValidateConfig(&Config{BasePath: "/tmp/code", Port: 1899, LogLevel: "info"})
		assert.Empty(t, issues)
	})

	t.Run("port out of range fails", func(t *testing.T) {
		issues := ValidateConfig(&Config{BasePath: "/tmp/code", Port: 0, LogLevel: "info"})
		require.NotEmpty(t, issues)
		assert.Contains(t, strings.Join(issues, "\n"), "port must be between")
	})

	t.Run("unknown log level fails", func(t *testing.T) {
		issues := ValidateConfig(&Config{BasePath: "/tmp/code", Port: 1899, LogLevel: "loud"})
		require.NotEmpty(t, issues)
		assert.Contains(t, strings.Join(issues, "\n"), "unknown log_level")
	})

	t.Run("empty base path fails", func(t *testing.T) {
		issues := ValidateConfig(&Config{Port: 1899, LogLevel: "info"})
		require.NotEmpty(t, issues)
		assert.Contains(t, strings.Join(issues, "\n"), "base_path must not be empty")
	})
}
