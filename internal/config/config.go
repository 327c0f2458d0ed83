package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Aura needs to reach the backend and manage its
// local footprint.
type Config struct {
	APIBind   string
	CacheDir  string
	LogDir    string
	LogLevel  string
	LogFormat string
}

const (
	defaultConfigPath = "~/.config/aura/config.toml"
	defaultCacheDir   = "~/.local/share/aura/cache"
	defaultLogDir     = "~/.local/share/aura/logs"
	defaultAPIBind    = "127.0.0.1:7319"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Load locates and parses the Aura config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBind:   defaultAPIBind,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.CacheDir = mustExpand(defaultCacheDir)
			cfg.LogDir = mustExpand(defaultLogDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind   string `toml:"api_bind"`
		CacheDir  string `toml:"cache_dir"`
		LogDir    string `toml:"log_dir"`
		LogLevel  string `toml:"log_level"`
		LogFormat string `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBind = strings.TrimSpace(raw.APIBind)
	if cfg.APIBind == "" {
		cfg.APIBind = defaultAPIBind
	}

	cfg.CacheDir = strings.TrimSpace(raw.CacheDir)
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir
	}
	cfg.CacheDir = mustExpand(cfg.CacheDir)

	cfg.LogDir = strings.TrimSpace(raw.LogDir)
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.LogFormat = strings.TrimSpace(raw.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}

	return cfg, nil
}

// LogPath returns the path to the primary aura log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/aura.log")
	}
	return filepath.Join(c.LogDir, "aura.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
