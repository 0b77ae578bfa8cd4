package cmd

import (
	"github.com/KaramelBytes/orderlens-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	segIn  inputFlags
	segTop int
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <file>",
	Short: "Show segment probabilities and top states per category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0], segIn)
		if err != nil {
			return err
		}
		res, err := aggregate(t, segTop)
		if err != nil {
			return err
		}
		rep := &report.Report{
			Overview:    report.NewOverview(t, res),
			Predictions: ruleSet().PredictAll(res),
		}
		return emit(cmd.OutOrStdout(), segIn, rep, rep)
	},
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
	addInputFlags(segmentsCmd, &segIn)
	segmentsCmd.Flags().IntVar(&segTop, "top", 0, "number of top states per category (default from config)")
}

func addInputFlags(c *cobra.Command, in *inputFlags) {
	c.Flags().StringVar(&in.sheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
	c.Flags().IntVar(&in.maxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
	c.Flags().BoolVar(&in.json, "json", false, "print JSON instead of Markdown")
	c.Flags().StringVar(&in.xlsx, "xlsx", "", "also export the results to this .xlsx workbook")
}
