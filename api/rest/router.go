// Package rest is the read-only JSON browsing API over the refreshed game
// tables.
package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/cache"
	mw "github.com/kasuganosora/fe8rguide/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RouterConfig wires NewRouter.
type RouterConfig struct {
	DB     *gorm.DB
	Logger *zap.Logger

	// Cache backs the page cache; nil or a zero PageTTL disables it.
	Cache   cache.Cache
	PageTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	// AllowedIPs may reach /api/admin. Entries are IPs or CIDRs.
	AllowedIPs []string

	// StaticDir is served at /static when set.
	StaticDir string
}

// NewRouter builds the engine with the middleware chain and every route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(log), mw.Recovery(log))
	r.Use(mw.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/health", Health)
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	itemH := NewItemHandler(cfg.DB)
	skillH := NewSkillHandler(cfg.DB)
	classH := NewClassHandler(cfg.DB)
	unitH := NewUnitHandler(cfg.DB)
	runH := NewRandomRunHandler(cfg.DB, nil)
	adminH := NewAdminHandler(cfg.DB)

	api := r.Group("/api")
	api.POST("/random-run", runH.Generate)

	adminG := api.Group("/admin")
	adminG.Use(mw.IPWhitelist(cfg.AllowedIPs, log))
	adminG.GET("/refresh", adminH.LastRefresh)

	pages := api.Group("")
	if cfg.Cache != nil {
		pages.Use(mw.PageCache(cfg.Cache, cfg.PageTTL, log))
	}
	{
		pages.GET("/items/categories", itemH.Categories)
		pages.GET("/items", itemH.List)
		pages.GET("/items/:nid", itemH.Detail)
		pages.GET("/arsenals/:unit", itemH.Arsenals)
		pages.GET("/shops", itemH.Shops)
		pages.GET("/shops/:nid", itemH.Shop)

		pages.GET("/skills", skillH.Index)
		pages.GET("/skills/:nid", skillH.Detail)

		pages.GET("/classes/categories", classH.Categories)
		pages.GET("/classes", classH.List)
		pages.GET("/classes/:nid", classH.Detail)
		pages.GET("/classes/:nid/promotions", classH.Promotions)

		pages.GET("/units/categories", unitH.Categories)
		pages.GET("/units", unitH.List)
		pages.GET("/units/:nid", unitH.Detail)
		pages.GET("/units/:nid/classes/:class", unitH.ClassSheet)
	}
	return r
}
