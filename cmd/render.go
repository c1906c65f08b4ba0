package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/report"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the food-access maps",
	Long: `Loads the tract geometry and the food-access survey, prints the survey
coverage percentage for the target state, and writes map.png,
population_map.png, county_population_map.png, county_food_access.png, and
low_access.png to the output directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts, err := reportOptions(cfg)
		if err != nil {
			return err
		}

		res, err := report.Generate(ctx, opts)
		if err != nil {
			return eris.Wrap(err, "render")
		}

		zap.L().Info("render complete",
			zap.String("run_id", res.RunID),
			zap.Int("tracts", res.Tracts),
			zap.Int("counties", res.Counties),
			zap.Strings("files", res.Files),
		)
		fmt.Fprintln(cmd.OutOrStdout(), res.Coverage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
