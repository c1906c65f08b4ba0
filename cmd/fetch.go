package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/tiger"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the TIGER/Line census tract shapefile for the target state",
	Long: `Downloads the Census TIGER/Line census tract shapefile for the target state
and extracts it. Prints the path of the extracted .shp, which can be passed
to --geometry. When the product's tract id field differs from
input.tract_id_field, the flag to load it with is printed to stderr.
Existing downloads are reused.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		year, _ := cmd.Flags().GetInt("year")
		dir, _ := cmd.Flags().GetString("dir")
		url, _ := cmd.Flags().GetString("url")

		// Use config values as defaults.
		if year == 0 {
			year = cfg.Tiger.Year
		}
		if dir == "" {
			dir = cfg.Tiger.TempDir
		}

		state, _ := tiger.StateAbbr(cfg.Analysis.State)
		fips, ok := tiger.FIPSCodes[state]
		if !ok {
			return eris.Errorf("fetch: unknown state %q (valid: %s)",
				cfg.Analysis.State, strings.Join(tiger.AllStateAbbrs(), ", "))
		}

		product := tiger.TractProduct(year)
		if url == "" {
			url = product.DownloadURL(fips)
		}

		zap.L().With(zap.String("command", "fetch")).Info("fetching TIGER tracts",
			zap.String("state", state),
			zap.Int("year", product.Year),
			zap.Int("vintage", product.Vintage),
			zap.String("id_field", product.IDField),
			zap.String("dir", dir),
		)

		shpPath, err := tiger.Download(ctx, url, dir)
		if err != nil {
			return eris.Wrap(err, "fetch")
		}

		fmt.Fprintln(cmd.OutOrStdout(), shpPath)
		if product.IDField != cfg.Input.TractIDField {
			fmt.Fprintf(cmd.ErrOrStderr(), "tracts in %s are keyed by %s; load them with --tract-id-field %s\n",
				filepath.Base(shpPath), product.IDField, product.IDField)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().Int("year", 0, "TIGER/Line year; 2000 selects the 2000 tracts (default: tiger.year)")
	fetchCmd.Flags().String("dir", "", "download directory (default: tiger.temp_dir)")
	fetchCmd.Flags().String("url", "", "override the download URL")
	_ = fetchCmd.Flags().MarkHidden("url")
	rootCmd.AddCommand(fetchCmd)
}
