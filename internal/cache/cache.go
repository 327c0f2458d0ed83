package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aurastudio/aura/internal/logging"
)

// Entry describes one cached asset payload.
type Entry struct {
	AssetID   string    `json:"asset_id"`
	ProjectID string    `json:"project_id"`
	Label     string    `json:"label"`
	Size      int64     `json:"size"`
	CachedAt  time.Time `json:"cached_at"`
}

// Usage summarizes the cache footprint.
type Usage struct {
	Entries    int
	TotalBytes int64
}

// Cache provides thread-safe access to the on-disk asset cache. If dir is
// empty the cache is non-functional and every operation is a no-op.
type Cache struct {
	dir     string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry // keyed by asset ID
}

const (
	indexFile  = "index.json"
	objectsDir = "objects"
)

// New creates a cache rooted at dir. The directory and index are created
// lazily on first Store call.
func New(dir string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithComponent(logger, "cache")

	c := &Cache{
		dir:     dir,
		logger:  logger,
		entries: make(map[string]Entry),
	}

	if dir == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load asset cache index",
			slog.Any("error", err),
			slog.String("impact", "cache starts empty; assets will be re-fetched"))
	}

	return c
}

// Lookup returns the payload path and entry for an asset ID if cached.
func (c *Cache) Lookup(assetID string) (string, Entry, bool) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" || c.dir == "" {
		return "", Entry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[assetID]
	if !found {
		return "", Entry{}, false
	}
	return c.objectPath(assetID), entry, true
}

// Store writes an asset payload and records it in the index.
func (c *Cache) Store(assetID, projectID, label string, payload []byte) error {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return errors.New("asset ID cannot be empty")
	}
	if c.dir == "" {
		return nil // no-op when dir not configured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(c.dir, objectsDir), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.objectPath(assetID), payload, 0o644); err != nil {
		return fmt.Errorf("write cached asset: %w", err)
	}

	c.entries[assetID] = Entry{
		AssetID:   assetID,
		ProjectID: strings.TrimSpace(projectID),
		Label:     strings.TrimSpace(label),
		Size:      int64(len(payload)),
		CachedAt:  time.Now(),
	}

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache index: %w", err)
	}

	c.logger.Debug("cached asset",
		slog.String("asset_id", assetID),
		slog.Int("bytes", len(payload)))

	return nil
}

// Remove deletes one cached asset and its index entry.
func (c *Cache) Remove(assetID string) error {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return errors.New("asset ID cannot be empty")
	}
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[assetID]; !exists {
		return fmt.Errorf("asset %q not found in cache", assetID)
	}

	delete(c.entries, assetID)
	if err := os.Remove(c.objectPath(assetID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cached asset: %w", err)
	}

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache index: %w", err)
	}

	c.logger.Debug("removed cached asset", slog.String("asset_id", assetID))
	return nil
}

// List returns all entries sorted by CachedAt descending (newest first).
func (c *Cache) List() []Entry {
	if c.dir == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	return entries
}

// Usage reports entry count and total payload bytes.
func (c *Cache) Usage() Usage {
	if c.dir == "" {
		return Usage{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	usage := Usage{Entries: len(c.entries)}
	for _, entry := range c.entries {
		usage.TotalBytes += entry.Size
	}
	return usage
}

// Prune removes entries older than maxAge and returns how many were dropped.
func (c *Cache) Prune(maxAge time.Duration) (int, error) {
	if c.dir == "" || maxAge <= 0 {
		return 0, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for assetID, entry := range c.entries {
		if entry.CachedAt.After(cutoff) {
			continue
		}
		delete(c.entries, assetID)
		if err := os.Remove(c.objectPath(assetID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove cached asset: %w", err)
		}
		removed++
	}

	if removed > 0 {
		if err := c.save(); err != nil {
			return removed, fmt.Errorf("persist cache index: %w", err)
		}
		c.logger.Info("pruned asset cache", slog.Int("removed", removed))
	}
	return removed, nil
}

// Clear removes every cached payload and the index.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)

	if err := os.RemoveAll(filepath.Join(c.dir, objectsDir)); err != nil {
		return fmt.Errorf("remove cached assets: %w", err)
	}
	if err := os.Remove(filepath.Join(c.dir, indexFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache index: %w", err)
	}

	c.logger.Info("cleared asset cache")
	return nil
}

func (c *Cache) objectPath(assetID string) string {
	return filepath.Join(c.dir, objectsDir, sanitize(assetID))
}

// load reads the index from disk into memory.
func (c *Cache) load() error {
	data, err := os.ReadFile(filepath.Join(c.dir, indexFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read cache index: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache index: %w", err)
	}

	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.AssetID) != "" {
			c.entries[entry.AssetID] = entry
		}
	}

	c.logger.Debug("loaded asset cache index", slog.Int("entry_count", len(c.entries)))
	return nil
}

// save writes the index to disk atomically.
func (c *Cache) save() error {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AssetID < entries[j].AssetID
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache index: %w", err)
	}

	path := filepath.Join(c.dir, indexFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace cache index: %w", err)
	}
	return nil
}

// sanitize keeps asset IDs filesystem-safe.
func sanitize(assetID string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, assetID)
}
