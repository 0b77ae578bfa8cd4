package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/orderlens-cli/internal/analysis"
	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/KaramelBytes/orderlens-cli/internal/report"
	"github.com/KaramelBytes/orderlens-cli/internal/utils"
)

// inputFlags are shared by the commands that read a dataset.
type inputFlags struct {
	sheet   string
	maxRows int
	json    bool
	xlsx    string
}

func loadTable(path string, in inputFlags) (*dataset.Table, error) {
	opt := dataset.Options{Sheet: in.sheet, MaxRows: in.maxRows}
	if cfg != nil && len(cfg.ColumnAliases) > 0 {
		opt.Aliases = make(map[dataset.Column][]string, len(cfg.ColumnAliases))
		for k, v := range cfg.ColumnAliases {
			opt.Aliases[dataset.Column(k)] = v
		}
	}
	t, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	appLog.Component("dataset").WithField("file", t.Name).WithField("rows", t.Len()).Info("dataset loaded")
	return t, nil
}

func topStates() int {
	if cfg == nil {
		return 5
	}
	return cfg.TopStates
}

func ruleSet() analysis.RuleSet {
	rs := analysis.DefaultRules()
	if cfg != nil {
		rs.TechDefaultPrice = cfg.TechDefaultPrice
		rs.TechPriceThreshold = cfg.TechPriceThreshold
	}
	return rs
}

func aggregate(t *dataset.Table, top int) (*analysis.Result, error) {
	if top <= 0 {
		top = topStates()
	}
	res, err := analysis.Aggregate(t, analysis.DefaultGrouping(top))
	if err != nil {
		return nil, err
	}
	appLog.Component("analysis").WithField("categories", len(res.Categories)).WithField("records", res.Records).Debug("aggregated")
	return res, nil
}

// emit writes v as JSON or rep as Markdown, and the workbook when requested.
func emit(w io.Writer, in inputFlags, rep *report.Report, v any) error {
	if in.json {
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
	} else {
		fmt.Fprint(w, rep.Markdown())
	}
	if in.xlsx != "" {
		if err := rep.WriteXLSX(in.xlsx); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		if !in.json {
			fmt.Fprintf(w, "\n✓ Wrote workbook to %s\n", in.xlsx)
		}
	}
	return nil
}
