package main

import (
	"context"

	"github.com/kasuganosora/fe8rguide/importer"
	mw "github.com/kasuganosora/fe8rguide/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	refreshData   string
	refreshStrict bool
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the database from the game_data directory",
	Long: `refresh drops the game tables, reloads them from the exported JSON files
and clears the page cache. Records that cannot be linked are reported, not fatal.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshData, "data", "", "game_data directory (overrides refresh.json_dir)")
	refreshCmd.Flags().BoolVar(&refreshStrict, "strict", false, "fail on shops without an abbreviation")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	dataPath := cfg.Refresh.JSONDir
	if refreshData != "" {
		dataPath = refreshData
	}
	cur, err := importer.LoadCuration(cfg.Refresh.CurationFile)
	if err != nil {
		return err
	}
	db, err := a.openDB()
	if err != nil {
		return err
	}

	im := importer.New(db, cur, importer.Options{
		BatchSize: cfg.Refresh.BatchSize,
		Strict:    cfg.Refresh.StrictCuration || refreshStrict,
	}, a.logger)
	rep, err := im.Run(cmd.Context(), dataPath)
	if err != nil {
		return err
	}

	for _, r := range rep.Reasons() {
		a.logger.Info("refresh skips", zap.String("reason", string(r)), zap.Int("count", rep.Skips[r]))
	}

	_, err = a.clearPages(cmd.Context())
	return err
}

// clearPages drops cached pages so serve picks up the new data. Only a Redis
// cache is shared with the serve process; an in-process cache lives in serve
// alone and its pages age out after cache.page_ttl.
func (a *app) clearPages(ctx context.Context) (bool, error) {
	if a.cfg.Cache.RedisAddr == "" {
		a.logger.Info("page cache is in-process, pages expire on their own",
			zap.Duration("page_ttl", a.cfg.Cache.PageTTL))
		return false, nil
	}
	c, err := a.openCache()
	if err != nil {
		return false, err
	}
	if err := c.DelPrefix(ctx, mw.PageCachePrefix); err != nil {
		a.logger.Warn("page cache clear failed", zap.Error(err))
		return false, nil
	}
	return true, nil
}
