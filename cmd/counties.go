package main

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/foodmap/internal/tract"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "Print county populations and low-access ratios for the target state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tbl, err := tract.Load(ctx, cfg.Input.Geometry, cfg.Input.Access, loadOptions(cfg))
		if err != nil {
			return eris.Wrap(err, "counties")
		}

		printCounties(cmd.OutOrStdout(), tract.AggregateCounties(tbl, cfg.Analysis.State))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}

// printCounties writes one line per county, sorted by name.
func printCounties(w io.Writer, v *tract.CountyView) {
	if len(v.Counties) == 0 {
		fmt.Fprintf(w, "No counties found for %s\n", v.State)
		return
	}

	fmt.Fprintf(w, "%-20s %6s %10s %10s %10s %10s %10s\n",
		"County", "Tracts", "Population", "LA half", "LA 10", "LALI half", "LALI 10")
	fmt.Fprintln(w, strings.Repeat("-", 82))

	for _, c := range v.Counties {
		fmt.Fprintf(w, "%-20s %6d %10.0f %10.4f %10.4f %10.4f %10.4f\n",
			c.Name, c.Tracts, c.Population,
			c.LAPopHalfRatio, c.LAPop10Ratio, c.LALowIHalfRatio, c.LALowI10Ratio)
	}
}
