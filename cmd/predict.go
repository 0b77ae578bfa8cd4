package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/orderlens-cli/internal/report"
	"github.com/KaramelBytes/orderlens-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	predIn       inputFlags
	predCategory string
	predPrice    float64
)

var predictCmd = &cobra.Command{
	Use:   "predict <file>",
	Short: "Recommend a customer segment and state for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(predCategory) == "" {
			return fmt.Errorf("--category is required")
		}
		t, err := loadTable(args[0], predIn)
		if err != nil {
			return err
		}
		res, err := aggregate(t, 0)
		if err != nil {
			return err
		}
		var price *float64
		if cmd.Flags().Changed("price") {
			p := predPrice
			price = &p
		}
		p := ruleSet().Predict(res, strings.TrimSpace(predCategory), price)
		if !p.Found {
			appLog.Component("analysis").WithField("category", p.Category).Warn("category not found")
		}
		w := cmd.OutOrStdout()
		if predIn.json {
			b, err := utils.PrettyJSON(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
			return nil
		}
		fmt.Fprint(w, report.PredictionMarkdown(p))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVarP(&predCategory, "category", "c", "", "product category to predict for (required)")
	predictCmd.Flags().Float64Var(&predPrice, "price", 0, "product price for price-sensitive rules")
	predictCmd.Flags().StringVar(&predIn.sheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
	predictCmd.Flags().BoolVar(&predIn.json, "json", false, "print JSON instead of Markdown")
}
