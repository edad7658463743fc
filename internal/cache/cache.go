// Package cache is a SQLite-backed TTL cache for provider payloads, so
// repeated runs within a TTL window don't refetch stats or odds.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	expires REAL NOT NULL
)`

type TTLCache struct {
	db *sql.DB
}

// Open creates (or reuses) the cache database at path, creating parent
// directories as needed.
func Open(path string) (*TTLCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &TTLCache{db: db}, nil
}

// Get unmarshals the cached value for key into dest. Returns false on a miss
// or an expired entry; expired entries are deleted on the way out.
func (c *TTLCache) Get(key string, dest any) (bool, error) {
	var value string
	var expires float64
	err := c.db.QueryRow("SELECT value, expires FROM cache WHERE key = ?", key).Scan(&value, &expires)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if expires < float64(time.Now().Unix()) {
		if err := c.Delete(key); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key for ttl.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	expires := float64(time.Now().Add(ttl).Unix())
	_, err = c.db.Exec("REPLACE INTO cache (key, value, expires) VALUES (?, ?, ?)", key, string(encoded), expires)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *TTLCache) Delete(key string) error {
	_, err := c.db.Exec("DELETE FROM cache WHERE key = ?", key)
	return err
}

func (c *TTLCache) Clear() error {
	_, err := c.db.Exec("DELETE FROM cache")
	return err
}

func (c *TTLCache) Close() error {
	return c.db.Close()
}
