package main

import (
	"encoding/json"
	"fmt"

	"github.com/kasuganosora/fe8rguide/config"
	"github.com/kasuganosora/fe8rguide/game/promo"
	"github.com/kasuganosora/fe8rguide/resource"
	"github.com/spf13/cobra"
)

var promoData string

var promoMapCmd = &cobra.Command{
	Use:   "promo-map",
	Short: "Print the class promotion map as JSON",
	Long: `promo-map reads classes.json from the game_data directory and prints, for
every class, the classes it turns into and the classes that turn into it.`,
	RunE: runPromoMap,
}

func init() {
	promoMapCmd.Flags().StringVar(&promoData, "data", "", "game_data directory (overrides refresh.json_dir)")
}

func runPromoMap(cmd *cobra.Command, args []string) error {
	dataPath := promoData
	if dataPath == "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		dataPath = cfg.Refresh.JSONDir
	}
	rl := resource.NewLoader(dataPath)
	if err := rl.Load(); err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(promo.BuildPromoMap(rl.Classes))
}
