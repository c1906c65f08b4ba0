package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/foodmap/internal/tract"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Print the food-access survey coverage of the target state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tbl, err := tract.Load(ctx, cfg.Input.Geometry, cfg.Input.Access, loadOptions(cfg))
		if err != nil {
			return eris.Wrap(err, "coverage")
		}

		fmt.Fprintln(cmd.OutOrStdout(), tract.Coverage(tbl, cfg.Analysis.State))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}
