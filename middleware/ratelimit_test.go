package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitRouter(rps float64, burst int) *gin.Engine {
	eng := gin.New()
	eng.Use(RateLimit(rps, burst))
	eng.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return eng
}

func hit(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AllowsFirst(t *testing.T) {
	r := newRateLimitRouter(100, 5)
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code)
}

func TestRateLimit_Burst(t *testing.T) {
	r := newRateLimitRouter(0.001, 3) // near-zero refill so the burst runs out
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.1.1").Code, "request %d should be allowed", i+1)
	}
	w := hit(r, "10.0.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimit_PerIP(t *testing.T) {
	r := newRateLimitRouter(0.001, 1)
	for _, ip := range []string{"10.1.1.1", "10.1.1.2"} {
		assert.Equal(t, http.StatusOK, hit(r, ip).Code, "first request from %s should be OK", ip)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.1.1.1").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newRateLimitRouter(0, 0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.2.2.2").Code)
	}
}
