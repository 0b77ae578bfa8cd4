package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/orderlens-cli/internal/synth"
)

// SummaryMarkdown renders the distribution of a generated dataset.
func SummaryMarkdown(s synth.Summary) string {
	var b strings.Builder
	b.WriteString("[GENERATED DATASET]\n")
	b.WriteString(fmt.Sprintf("Records: %d\n", s.Records))

	b.WriteString("\n[CATEGORY DISTRIBUTION]\n")
	for _, c := range s.Categories {
		b.WriteString(fmt.Sprintf("- %s: %d\n", c.Value, c.Count))
	}
	b.WriteString("\n[SEGMENT DISTRIBUTION]\n")
	for _, sh := range s.Segments {
		b.WriteString(fmt.Sprintf("- %s: %.1f%%\n", sh.Value, sh.Percent))
	}
	b.WriteString("\n[STATE DISTRIBUTION]\n")
	for _, c := range s.TopStates {
		b.WriteString(fmt.Sprintf("- %s: %d\n", c.Value, c.Count))
	}
	if len(s.Prices) > 0 {
		b.WriteString("\n[PRICES]\n")
		for _, p := range s.Prices {
			b.WriteString(fmt.Sprintf("- %s: min %.2f, median %.2f, mean %.2f, max %.2f (std %.2f)\n",
				p.Category, p.Min, p.Median, p.Mean, p.Max, p.StdDev))
		}
	}
	return b.String()
}
