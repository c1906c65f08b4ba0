package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "foodmap",
	Short: "Census tract food-access maps",
	Long: `Joins census tract boundaries with the USDA Food Access Research Atlas,
reports survey coverage for a state, aggregates low-access populations by
county, classifies low-access tracts, and renders the results as PNG maps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		applyFlagOverrides(cmd, cfg)

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("geometry", "", "tract geometry file: GeoJSON, .shp, or zipped shapefile (default: input.geometry)")
	pf.String("access", "", "food-access survey: .csv or .xlsx (default: input.access)")
	pf.String("state", "", "target state abbreviation (default: analysis.state)")
	pf.String("out", "", "output directory for maps (default: output.dir)")
	pf.String("tract-id-field", "", "geometry attribute holding the tract GEOID (default: input.tract_id_field)")
}

// applyFlagOverrides copies explicitly set persistent flags over the
// loaded configuration.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	for flag, dst := range map[string]*string{
		"geometry":       &c.Input.Geometry,
		"access":         &c.Input.Access,
		"state":          &c.Analysis.State,
		"out":            &c.Output.Dir,
		"tract-id-field": &c.Input.TractIDField,
	} {
		if f := cmd.Root().PersistentFlags().Lookup(flag); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
