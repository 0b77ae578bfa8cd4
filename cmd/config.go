package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/orderlens-cli/internal/config"
	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set orderlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(w, "No config loaded")
			return nil
		}
		fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(w, "log_format: %s\n", cfg.LogFormat)
		fmt.Fprintf(w, "top_states: %d\n", cfg.TopStates)
		fmt.Fprintf(w, "tech_default_price: %.2f\n", cfg.TechDefaultPrice)
		fmt.Fprintf(w, "tech_price_threshold: %.2f\n", cfg.TechPriceThreshold)
		fmt.Fprintf(w, "fallback_discount: %.2f\n", cfg.FallbackDiscount)
		fmt.Fprintf(w, "generate_records: %d\n", cfg.GenerateRecords)
		fmt.Fprintf(w, "generate_output: %s\n", cfg.GenerateOutput)
		if len(cfg.ColumnAliases) > 0 {
			keys := make([]string, 0, len(cfg.ColumnAliases))
			for k := range cfg.ColumnAliases {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(w, "column_aliases:")
			for _, k := range keys {
				fmt.Fprintf(w, "  %s: %s\n", k, strings.Join(cfg.ColumnAliases[k], ", "))
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk.

Column aliases are set per canonical column as a comma-separated list:
  orderlens config set column_aliases.category "dept,product group"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				next.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				next.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text|json)", val)
			}
		case "top_states":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for top_states: %w", err)
			}
			next.TopStates = i
		case "tech_default_price":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for tech_default_price: %w", err)
			}
			next.TechDefaultPrice = f
		case "tech_price_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for tech_price_threshold: %w", err)
			}
			next.TechPriceThreshold = f
		case "fallback_discount":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for fallback_discount: %w", err)
			}
			next.FallbackDiscount = f
		case "generate_records":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for generate_records: %w", err)
			}
			next.GenerateRecords = i
		case "generate_output":
			next.GenerateOutput = val
		default:
			col, ok := strings.CutPrefix(key, "column_aliases.")
			if !ok || !knownColumn(col) {
				return fmt.Errorf("unknown key: %s", key)
			}
			aliases := map[string][]string{}
			for k, v := range cfg.ColumnAliases {
				aliases[k] = v
			}
			var names []string
			for _, n := range strings.Split(val, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}
			if len(names) == 0 {
				delete(aliases, col)
			} else {
				aliases[col] = names
			}
			next.ColumnAliases = aliases
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func knownColumn(name string) bool {
	_, ok := dataset.DefaultAliases()[dataset.Column(name)]
	return ok
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
