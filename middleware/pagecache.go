package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/cache"
	"go.uber.org/zap"
)

const (
	// PageCachePrefix namespaces cached responses; a data refresh clears it.
	PageCachePrefix = "page:"
	// PageCacheHitKey is set on the context when a response came from cache.
	PageCacheHitKey = "page_cache_hit"
	PageCacheHeader = "X-Cache"
)

// PageKey is the cache key of a request URI.
func PageKey(uri string) string { return PageCachePrefix + uri }

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves GET responses from c keyed by the full request URI and
// stores successful ones for ttl. Cache failures only cost the cache: the
// request is served as if nothing was cached.
func PageCache(c cache.Cache, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet || ttl <= 0 {
			ctx.Next()
			return
		}
		key := PageKey(ctx.Request.URL.RequestURI())
		body, err := c.Get(ctx.Request.Context(), key)
		switch {
		case err == nil:
			ctx.Set(PageCacheHitKey, true)
			ctx.Header(PageCacheHeader, "HIT")
			ctx.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", []byte(body))
			ctx.Abort()
			return
		case !cache.IsNotFound(err):
			log.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		}

		rec := &bodyRecorder{ResponseWriter: ctx.Writer}
		ctx.Writer = rec
		ctx.Header(PageCacheHeader, "MISS")
		ctx.Next()

		if rec.Status() != http.StatusOK || rec.body.Len() == 0 {
			return
		}
		if err := c.Set(ctx.Request.Context(), key, rec.body.String(), ttl); err != nil {
			log.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
