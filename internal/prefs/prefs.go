// Package prefs handles Aura editor preferences persistence.
// Preferences are stored in ~/.config/aura/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/aurastudio/aura/internal/timeline"
)

// Prefs holds editor preferences for Aura.
type Prefs struct {
	Theme           string  `toml:"theme"`
	SnapEnabled     bool    `toml:"snap_enabled"`
	SnapThresholdPx float64 `toml:"snap_threshold_px"`
	DefaultZoom     float64 `toml:"default_zoom"`
}

const (
	defaultPrefsPath = "~/.config/aura/prefs.toml"
	defaultTheme     = "Dracula"
	defaultZoom      = 50.0

	minThresholdPx = 1.0
	maxThresholdPx = 64.0
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is persisted.
func Defaults() Prefs {
	return Prefs{
		Theme:           defaultTheme,
		SnapEnabled:     true,
		SnapThresholdPx: timeline.DefaultThresholdPx,
		DefaultZoom:     defaultZoom,
	}
}

// Load reads preferences from the given path, falling back to defaults on any
// failure. Preferences are never load-bearing enough to abort startup over.
func Load(path string) Prefs {
	prefs := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs
		}
		return prefs // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults() // Graceful degradation
	}

	return normalize(prefs)
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(normalize(p))
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Snapper builds a timeline snapper configured from the preferences.
func (p Prefs) Snapper() *timeline.Snapper {
	s := timeline.NewSnapper()
	s.SetThreshold(p.SnapThresholdPx)
	s.SetEnabled(p.SnapEnabled)
	return s
}

// normalize clamps persisted values back into their usable ranges.
func normalize(p Prefs) Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	if p.SnapThresholdPx < minThresholdPx || p.SnapThresholdPx > maxThresholdPx {
		p.SnapThresholdPx = timeline.DefaultThresholdPx
	}
	if p.DefaultZoom <= 0 {
		p.DefaultZoom = defaultZoom
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
