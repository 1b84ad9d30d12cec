package doorsheet

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flanksource/commons/logger"
	_ "github.com/mattn/go-sqlite3"
)

// SheetCache stores rendered sheets in sqlite, keyed by the request fingerprint
type SheetCache struct {
	db     *sql.DB
	config CacheConfig
	now    func() time.Time
}

// NewSheetCache opens (or creates) the cache database. With a zero TTL the
// cache is a no-op and no file is touched.
func NewSheetCache(config CacheConfig) (*SheetCache, error) {
	cache := &SheetCache{config: config, now: time.Now}
	if config.TTL == 0 {
		return cache, nil
	}

	if config.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DBPath = filepath.Join(homeDir, ".cache", "doorsheet.db")
		cache.config = config
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	cache.db = db
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if n, err := cache.Prune(); err != nil {
		logger.Warnf("failed to prune sheet cache: %v", err)
	} else if n > 0 {
		logger.Debugf("pruned %d expired sheets from %s", n, config.DBPath)
	}
	return cache, nil
}

// Enabled reports whether lookups can hit
func (c *SheetCache) Enabled() bool {
	return c != nil && c.db != nil
}

// Close closes the database connection
func (c *SheetCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached sheet for key, or nil when absent or expired
func (c *SheetCache) Get(key string) (*Sheet, error) {
	if !c.Enabled() {
		return nil, nil
	}

	query := `
		SELECT name, page_w, page_h, data
		FROM sheet_cache
		WHERE cache_key = ? AND expires_at > ?
	`
	sheet := &Sheet{Cached: true}
	err := c.db.QueryRow(query, key, c.now().Unix()).Scan(&sheet.Name, &sheet.Page.W, &sheet.Page.H, &sheet.Data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	_, _ = c.db.Exec("UPDATE sheet_cache SET accessed_at = ? WHERE cache_key = ?", c.now().Unix(), key)
	return sheet, nil
}

// Set stores sheet under key until the TTL elapses
func (c *SheetCache) Set(key string, sheet *Sheet) error {
	if !c.Enabled() {
		return nil
	}

	now := c.now()
	query := `
		INSERT OR REPLACE INTO sheet_cache (
			cache_key, name, page_w, page_h, data, cached_at, expires_at, accessed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.Exec(query,
		key, sheet.Name, sheet.Page.W, sheet.Page.H, sheet.Data,
		now.Unix(), now.Add(c.config.TTL).Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed
func (c *SheetCache) Prune() (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	res, err := c.db.Exec("DELETE FROM sheet_cache WHERE expires_at <= ?", c.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes all cache entries
func (c *SheetCache) Clear() error {
	if !c.Enabled() {
		return nil
	}
	if _, err := c.db.Exec("DELETE FROM sheet_cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats returns the number of live entries and their total size in bytes
func (c *SheetCache) Stats() (entries int, size int64, err error) {
	if !c.Enabled() {
		return 0, 0, nil
	}
	err = c.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM sheet_cache WHERE expires_at > ?",
		c.now().Unix(),
	).Scan(&entries, &size)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return entries, size, nil
}

func (c *SheetCache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sheet_cache (
		cache_key TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		page_w REAL NOT NULL,
		page_h REAL NOT NULL,
		data BLOB NOT NULL,
		cached_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL,
		accessed_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sheet_cache_expires
		ON sheet_cache(expires_at);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
