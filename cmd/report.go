package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/KaramelBytes/orderlens-cli/internal/analysis"
	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/KaramelBytes/orderlens-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	repIn          inputFlags
	repTop         int
	repSimulate    bool
	repDefaultDisc bool
	repSeed        int64
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Print the combined per-category prediction table",
	Long: `Prints, per category, segment percentages and top states with the recommended
segment and state starred, plus the average discount.

Average discounts come from the dataset's discount column. Without one, use
--simulate-discounts to draw category-typical discounts, or the built-in
reference table is used. --default-discounts always uses that table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0], repIn)
		if err != nil {
			return err
		}
		res, err := aggregate(t, repTop)
		if err != nil {
			return err
		}
		rep := &report.Report{
			Overview:    report.NewOverview(t, res),
			Predictions: ruleSet().PredictAll(res),
			Fallback:    cfg.FallbackDiscount,
		}
		avg, note, err := averageDiscounts(cmd, t)
		if err != nil {
			return err
		}
		rep.Averages = avg
		rep.Notes = append(rep.Notes, note)
		return emit(cmd.OutOrStdout(), repIn, rep, rep)
	},
}

// averageDiscounts picks the discount source for the combined table.
func averageDiscounts(cmd *cobra.Command, t *dataset.Table) (map[string]float64, string, error) {
	if repDefaultDisc {
		return analysis.DefaultAverageDiscounts(), "Using default average discount values.", nil
	}
	if !t.Has(dataset.ColDiscount) && !repSimulate {
		return analysis.DefaultAverageDiscounts(), "No discount column; using default average discount values.", nil
	}
	orders, err := dataset.OrdersFrom(t)
	if err != nil {
		return nil, "", err
	}
	note := "Using calculated average discount percentages."
	if !t.Has(dataset.ColDiscount) {
		seed := repSeed
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}
		orders = analysis.SimulateDiscounts(orders, rand.New(rand.NewSource(seed)))
		note = fmt.Sprintf("Using simulated average discount percentages (seed %d).", seed)
	}
	avg := analysis.AverageDiscounts(orders)
	if len(avg) == 0 {
		return analysis.DefaultAverageDiscounts(), "No discounts in dataset; using default average discount values.", nil
	}
	return avg, note, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addInputFlags(reportCmd, &repIn)
	reportCmd.Flags().IntVar(&repTop, "top", 0, "number of top states per category (default from config)")
	reportCmd.Flags().BoolVar(&repSimulate, "simulate-discounts", false, "simulate discounts when the dataset has no discount column")
	reportCmd.Flags().BoolVar(&repDefaultDisc, "default-discounts", false, "use the built-in average discount table")
	reportCmd.Flags().Int64Var(&repSeed, "seed", 0, "seed for simulated discounts")
}
