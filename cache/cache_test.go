package cache

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestCache(t *testing.T, ttl time.Duration) *Cache {
	return New(t.TempDir(), ttl)
}

func TestPathIsStableAndSafe(t *testing.T) {
	c := New("cachedir", time.Hour)

	p1 := c.Path("hello-world")
	p2 := c.Path("hello-world")
	assert.Equal(t, p1, p2)
	assert.True(t, strings.HasPrefix(filepath.Base(p1), "hello-world_"))
	assert.True(t, strings.HasSuffix(p1, ".html"))

	// different slugs get different files
	assert.NotEqual(t, c.Path("hello-world"), c.Path("hello-mars"))

	// hostile characters are sanitized out of the filename
	weird := c.Path("../../etc/passwd")
	assert.NotContains(t, filepath.Base(weird), "/")
	assert.NotContains(t, filepath.Base(weird), "..")
}

func TestWriteAndRead(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	_, found := c.Read("missing")
	assert.False(t, found)

	assert.NoError(t, c.Write("my-article", "<html>cached</html>"))
	content, found := c.Read("my-article")
	assert.True(t, found)
	assert.Equal(t, "<html>cached</html>", content)
}

func TestReadExpiredEntry(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	assert.NoError(t, c.Write("old-article", "stale"))

	// age the file past the TTL
	past := time.Now().Add(-2 * time.Hour)
	assert.NoError(t, os.Chtimes(c.Path("old-article"), past, past))

	_, found := c.Read("old-article")
	assert.False(t, found)
}

func TestClear(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	assert.NoError(t, c.Write("gone-soon", "x"))

	assert.NoError(t, c.Clear("gone-soon"))
	_, found := c.Read("gone-soon")
	assert.False(t, found)

	// clearing an absent entry is not an error
	assert.NoError(t, c.Clear("never-existed"))
}

func TestClearExpired(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	assert.NoError(t, c.Write("fresh", "keep"))
	assert.NoError(t, c.Write("stale", "drop"))

	past := time.Now().Add(-2 * time.Hour)
	assert.NoError(t, os.Chtimes(c.Path("stale"), past, past))

	assert.NoError(t, c.ClearExpired())

	_, found := c.Read("fresh")
	assert.True(t, found)
	_, err := os.Stat(c.Path("stale"))
	assert.True(t, os.IsNotExist(err))
}

func TestArticleSlugExtraction(t *testing.T) {
	tests := []struct {
		path string
		slug string
		ok   bool
	}{
		{"/read/hello-world", "hello-world", true},
		{"/read/hello-world/", "hello-world", true},
		{"/read", "", false},
		{"/read/", "", false},
		{"/read/a/b", "", false},
		{"/api/articles/1", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		slug, ok := articleSlug(tt.path)
		assert.Equal(t, tt.ok, ok, "path %q", tt.path)
		assert.Equal(t, tt.slug, slug, "path %q", tt.path)
	}
}

func TestMiddlewareCachesArticlePages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := setupTestCache(t, time.Hour)

	renders := 0
	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/read/:slug", func(ctx *gin.Context) {
		renders++
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<html>rendered</html>"))
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/read/my-article", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, renders)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/read/my-article", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "<html>rendered</html>", second.Body.String())
	assert.Equal(t, 1, renders)
}

func TestMiddlewareSkipsNonArticlePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := setupTestCache(t, time.Hour)

	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/read", func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte("index"))
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read", nil))
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
}

func TestMiddlewareDoesNotCacheErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := setupTestCache(t, time.Hour)

	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/read/:slug", func(ctx *gin.Context) {
		ctx.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("not found"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read/missing", nil))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	_, found := c.Read("missing")
	assert.False(t, found)
}
