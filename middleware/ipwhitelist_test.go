package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newWhitelistRouter(ips []string) *gin.Engine {
	r := gin.New()
	r.Use(IPWhitelist(ips, zap.NewNop()))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func requestFrom(r http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestIPWhitelist_EmptyDeniesAll(t *testing.T) {
	r := newWhitelistRouter(nil)
	assert.Equal(t, http.StatusForbidden, requestFrom(r, "127.0.0.1"))
}

func TestIPWhitelist_ExactIPs(t *testing.T) {
	allowed := []string{"10.0.0.1", "::1"}
	r := newWhitelistRouter(allowed)

	for _, ip := range allowed {
		assert.Equal(t, http.StatusOK, requestFrom(r, ip), "expected OK for %s", ip)
	}
	assert.Equal(t, http.StatusForbidden, requestFrom(r, "10.0.0.3"))
}

func TestIPWhitelist_CIDR(t *testing.T) {
	r := newWhitelistRouter([]string{"192.168.0.0/16"})
	assert.Equal(t, http.StatusOK, requestFrom(r, "192.168.4.20"))
	assert.Equal(t, http.StatusForbidden, requestFrom(r, "192.169.0.1"))
}

func TestIPWhitelist_InvalidEntriesIgnored(t *testing.T) {
	r := newWhitelistRouter([]string{"not-an-ip", "10.0.0.0/33", "10.0.0.7"})
	assert.Equal(t, http.StatusOK, requestFrom(r, "10.0.0.7"))
	assert.Equal(t, http.StatusForbidden, requestFrom(r, "10.0.0.8"))
}
