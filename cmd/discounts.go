package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/orderlens-cli/internal/analysis"
	"github.com/KaramelBytes/orderlens-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	discIn       inputFlags
	discCategory string
)

type discountOutput struct {
	Optimal    []*analysis.CategoryDiscount `json:"optimal"`
	Category   string                       `json:"category,omitempty"`
	Discount   *float64                     `json:"discount,omitempty"`
	IsFallback bool                         `json:"fallback,omitempty"`
}

var discountsCmd = &cobra.Command{
	Use:   "discounts <file>",
	Short: "Find the revenue-maximizing discount tier per category",
	Long: `Groups orders by category and discount tier and keeps the tier with the highest
summed revenue. Revenue is the final price column, or price reduced by the discount.
With --category, an unseen category gets the mean of all optimal discounts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0], discIn)
		if err != nil {
			return err
		}
		dt, err := analysis.OptimizeDiscountsTable(t)
		if err != nil {
			return err
		}
		appLog.Component("discounts").WithField("categories", len(dt.Categories)).Debug("optimized")

		rep := &report.Report{
			Discounts: dt,
			Notes:     []string{"Tiers are ranked by summed revenue, so tiers with more orders are favored."},
		}
		out := discountOutput{Optimal: dt.All()}
		if c := strings.TrimSpace(discCategory); c != "" {
			d, fallback, err := dt.Predict(c)
			if err != nil {
				return err
			}
			out.Category, out.Discount, out.IsFallback = c, &d, fallback
			how := "optimal tier"
			if fallback {
				how = "mean of known optimal discounts"
			}
			rep.Notes = append(rep.Notes, fmt.Sprintf("Discount for %s: %.2f%% (%s)", c, d, how))
		}
		return emit(cmd.OutOrStdout(), discIn, rep, out)
	},
}

func init() {
	rootCmd.AddCommand(discountsCmd)
	addInputFlags(discountsCmd, &discIn)
	discountsCmd.Flags().StringVarP(&discCategory, "category", "c", "", "also predict the discount for this category")
}
