package cmd

import (
	"fmt"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/KaramelBytes/orderlens-cli/internal/report"
	"github.com/KaramelBytes/orderlens-cli/internal/synth"
	"github.com/KaramelBytes/orderlens-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	genRecords int
	genOutput  string
	genSeed    int64
	genJSON    bool
	genQuiet   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic e-commerce order dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := cfg.GenerateRecords
		if cmd.Flags().Changed("records") {
			n = genRecords
		}
		out := cfg.GenerateOutput
		if genOutput != "" {
			out = genOutput
		}
		g := synth.New(synth.Options{
			Seed:   genSeed,
			Seeded: cmd.Flags().Changed("seed"),
			Log:    appLog,
		})
		orders, err := g.Generate(cmd.Context(), n)
		if err != nil {
			return err
		}
		if err := dataset.WriteCSV(out, orders); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		appLog.Component("synth").WithField("records", len(orders)).WithField("output", out).Info("dataset written")

		w := cmd.OutOrStdout()
		if genQuiet {
			return nil
		}
		sum := synth.Summarize(orders)
		if genJSON {
			b, err := utils.PrettyJSON(sum)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
			return nil
		}
		fmt.Fprint(w, report.SummaryMarkdown(sum))
		fmt.Fprintf(w, "\n✓ Saved synthetic data to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&genRecords, "records", "n", synth.DefaultRecords, "number of orders to generate")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output CSV path (default from config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "seed for reproducible output")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "print the summary as JSON")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "do not print the summary")
}
