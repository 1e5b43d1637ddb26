// Package cache stores rendered article pages as HTML files on disk.
// Entries expire by file modification time.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

type Cache struct {
	dir string
	ttl time.Duration
}

func New(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// Path returns the cache file path for an article slug. The hash suffix
// keeps look-alike slugs from colliding after sanitization.
func (c *Cache) Path(slug string) string {
	hash := generateHash(slug)
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.html", sanitizeSlug(slug), hash[:16]))
}

// generateHash returns the xxHash of s as a hex string.
func generateHash(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// sanitizeSlug keeps the filename to a safe character set.
func sanitizeSlug(slug string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, strings.ToLower(slug))
}

// Write stores rendered HTML for a slug.
func (c *Cache) Write(slug, html string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.Path(slug), []byte(html), 0644)
}

// Read returns the cached HTML for a slug if present and fresh.
func (c *Cache) Read(slug string) (string, bool) {
	path := c.Path(slug)

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return "", false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(content), true
}

// Clear removes the cache entry for a slug. Also removes stale entries that
// share the slug prefix, which covers hash scheme changes.
func (c *Cache) Clear(slug string) error {
	if err := os.Remove(c.Path(slug)); err != nil && !os.IsNotExist(err) {
		return err
	}
	matches, err := filepath.Glob(filepath.Join(c.dir, sanitizeSlug(slug)+"_*.html"))
	if err != nil {
		return nil
	}
	for _, match := range matches {
		os.Remove(match)
	}
	return nil
}

// ClearAll removes every cached page.
func (c *Cache) ClearAll() error {
	return os.RemoveAll(c.dir)
}

// ClearExpired removes cache files older than the TTL.
func (c *Cache) ClearExpired() error {
	return filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		if time.Since(info.ModTime()) > c.ttl {
			os.Remove(path)
		}
		return nil
	})
}
