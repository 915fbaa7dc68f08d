// Command fe8rguide rebuilds the game database from an exported game_data
// directory and serves it as a read-only JSON API.
package main

import (
	"fmt"
	"os"

	"github.com/kasuganosora/fe8rguide/cache"
	"github.com/kasuganosora/fe8rguide/config"
	dbadapter "github.com/kasuganosora/fe8rguide/db"
	"github.com/kasuganosora/fe8rguide/logging"
	"github.com/kasuganosora/fe8rguide/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "fe8rguide",
	Short:         "Game data guide for the FE8R mod",
	Long:          `fe8rguide imports the mod's exported game data into a database and serves it for browsing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config/config.yaml", "config file")
	rootCmd.AddCommand(serveCmd, refreshCmd, promoMapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.Log, cfg.Server.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) close() { _ = a.logger.Sync() }

func (a *app) openDB() (*gorm.DB, error) {
	db, err := dbadapter.Open(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	a.logger.Info("DB initialized", zap.String("mode", a.cfg.Database.Mode))
	return db, nil
}

func (a *app) openCache() (cache.Cache, error) {
	c, err := cache.NewCache(cache.CacheConfig{
		RedisAddr:       a.cfg.Cache.RedisAddr,
		RedisPassword:   a.cfg.Cache.RedisPassword,
		RedisDB:         a.cfg.Cache.RedisDB,
		LocalGCInterval: a.cfg.Cache.LocalGCInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return c, nil
}
