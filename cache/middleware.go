package cache

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves article pages from the cache and fills it on misses.
// Only GET /read/<slug> responses are cached.
func (c *Cache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		slug, ok := articleSlug(ctx.Request.URL.Path)
		if !ok {
			ctx.Next()
			return
		}

		if cached, found := c.Read(slug); found {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			ctx.Abort()
			return
		}

		ctx.Header("X-Cache", "MISS")

		writer := &responseWriter{ResponseWriter: ctx.Writer, body: bytes.NewBuffer(nil)}
		ctx.Writer = writer

		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK &&
			strings.HasPrefix(ctx.Writer.Header().Get("Content-Type"), "text/html") {
			c.Write(slug, writer.body.String())
		}
	}
}

// articleSlug extracts the slug from a /read/<slug> path. The list page at
// /read is never cached; its content shifts with every create.
func articleSlug(path string) (string, bool) {
	const prefix = "/read/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	slug := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if slug == "" || strings.Contains(slug, "/") {
		return "", false
	}
	return slug, true
}
