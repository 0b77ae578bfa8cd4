package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/orderlens-cli/internal/analysis"
	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

// Overview is the dataset summary printed ahead of the analysis.
type Overview struct {
	File       string   `json:"file"`
	Records    int      `json:"records"`
	Categories int      `json:"categories"`
	Segments   []string `json:"segments"`
	States     []string `json:"states"`
}

// NewOverview summarizes a loaded table. Missing segment or state columns
// leave the corresponding lists empty.
func NewOverview(t *dataset.Table, res *analysis.Result) *Overview {
	o := &Overview{File: t.Name, Records: t.Len(), Categories: len(res.Categories)}
	o.Segments, _ = t.Distinct(dataset.ColSegment)
	o.States, _ = t.Distinct(dataset.ColState)
	sort.Strings(o.Segments)
	sort.Strings(o.States)
	return o
}

// Report gathers everything a command renders. Empty parts are skipped.
type Report struct {
	Overview    *Overview               `json:"overview,omitempty"`
	Predictions []analysis.Prediction   `json:"predictions,omitempty"`
	Discounts   *analysis.DiscountTable `json:"-"`
	// Averages are per-category average discounts for the combined table.
	Averages map[string]float64 `json:"average_discounts,omitempty"`
	// Fallback fills categories missing from Averages.
	Fallback float64  `json:"fallback_discount,omitempty"`
	Notes    []string `json:"notes,omitempty"`
}

// Combined reports whether the combined prediction table is rendered.
func (r *Report) Combined() bool { return r.Averages != nil }

// Discount returns the average discount for category, or the fallback.
func (r *Report) Discount(category string) float64 {
	if d, ok := r.Averages[category]; ok {
		return d
	}
	return r.Fallback
}

// Markdown renders the report in bracketed sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	if r.Overview != nil {
		writeOverview(&b, r.Overview)
	}
	if len(r.Predictions) > 0 && !r.Combined() {
		writeSegments(&b, r.Predictions)
		writeStates(&b, r.Predictions)
	}
	if r.Discounts != nil {
		writeDiscounts(&b, r.Discounts)
	}
	if r.Combined() {
		writeCombined(&b, r)
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range r.Notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return strings.TrimLeft(b.String(), "\n")
}

func writeOverview(b *strings.Builder, o *Overview) {
	b.WriteString("[DATASET OVERVIEW]\n")
	if o.File != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", o.File))
	}
	b.WriteString(fmt.Sprintf("Records: %d\n", o.Records))
	b.WriteString(fmt.Sprintf("Categories: %d\n", o.Categories))
	if len(o.Segments) > 0 {
		b.WriteString(fmt.Sprintf("Segments: %s\n", strings.Join(o.Segments, ", ")))
	}
	if len(o.States) > 0 {
		b.WriteString(fmt.Sprintf("States: %d unique\n", len(o.States)))
	}
}

func writeSegments(b *strings.Builder, preds []analysis.Prediction) {
	b.WriteString("\n[SEGMENT PROBABILITIES]\n")
	for _, p := range preds {
		if !p.Found {
			b.WriteString(fmt.Sprintf("- %s: %s\n", p.Category, p.Error))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", p.Category, segmentLine(p)))
	}
}

func writeStates(b *strings.Builder, preds []analysis.Prediction) {
	b.WriteString("\n[TOP STATES]\n")
	for _, p := range preds {
		if !p.Found {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", p.Category, stateLine(p, false)))
	}
}

func writeDiscounts(b *strings.Builder, dt *analysis.DiscountTable) {
	b.WriteString("\n[OPTIMAL DISCOUNTS]\n")
	all := dt.All()
	if len(all) == 0 {
		b.WriteString("- no discount data\n")
		return
	}
	for _, cd := range all {
		b.WriteString(fmt.Sprintf("- %s: %s%% (revenue %.2f across %d tiers)\n",
			cd.Category, pct(cd.Optimal), cd.Revenue, len(cd.Tiers)))
	}
}

func writeCombined(b *strings.Builder, r *Report) {
	b.WriteString("\n[PREDICTIONS]\n")
	b.WriteString("| Category | Segment % (Consumer, Corporate, Home Office) | Top States | Discount |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, p := range sortedPredictions(r.Predictions) {
		if !p.Found {
			continue
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s%% |\n",
			p.Category, segmentLine(p), stateLine(p, true), pct(r.Discount(p.Category))))
	}
	b.WriteString("\n* marks the recommended segment and state.\n")
}

// PredictionMarkdown renders a single category prediction.
func PredictionMarkdown(p analysis.Prediction) string {
	var b strings.Builder
	b.WriteString("[PREDICTION]\n")
	b.WriteString(fmt.Sprintf("Category: %s\n", p.Category))
	if !p.Found {
		b.WriteString(fmt.Sprintf("Result: %s\n", p.Error))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Best segment: %s (%s)\n", p.BestSegment, p.SegmentRule))
	b.WriteString(fmt.Sprintf("Best state: %s (%s)\n", p.BestState, p.StateRule))
	b.WriteString(fmt.Sprintf("Segments: %s\n", segmentLine(p)))
	b.WriteString(fmt.Sprintf("Top states: %s\n", stateLine(p, false)))
	return b.String()
}

// segmentLine lists Consumer, Corporate and Home Office shares with the pick starred.
func segmentLine(p analysis.Prediction) string {
	names := append([]string(nil), dataset.Segments...)
	for s := range p.SegmentProbabilities {
		if !contains(names, s) {
			names = append(names, s)
		}
	}
	if len(names) > len(dataset.Segments) {
		sort.Strings(names[len(dataset.Segments):])
	}
	parts := make([]string, 0, len(names))
	for i, s := range names {
		v := fmt.Sprintf("%.1f%%", p.SegmentProbabilities[s]*100)
		if i >= len(dataset.Segments) {
			v = s + " " + v
		}
		if s == p.BestSegment {
			v = "*" + v
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

// stateLine lists ranked states with percentages; short uses postal codes.
func stateLine(p analysis.Prediction, short bool) string {
	parts := make([]string, 0, len(p.TopStates))
	for _, rv := range p.TopStates {
		var v string
		if short {
			v = fmt.Sprintf("%s: %s", dataset.ShortState(rv.Value), pct(rv.Percentage))
		} else {
			v = fmt.Sprintf("%s: %s (%s%%)", rv.Value, orderCount(rv.Count), pct(rv.Percentage))
		}
		if rv.Value == p.BestState {
			v = "*" + v
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

func sortedPredictions(preds []analysis.Prediction) []analysis.Prediction {
	out := append([]analysis.Prediction(nil), preds...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func orderCount(n int) string {
	if n == 1 {
		return "1 order"
	}
	return fmt.Sprintf("%d orders", n)
}

// pct formats a percentage without trailing zeros.
func pct(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
