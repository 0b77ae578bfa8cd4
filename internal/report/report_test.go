package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/orderlens-cli/internal/analysis"
	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

func fixture(t *testing.T) (*dataset.Table, *analysis.Result) {
	t.Helper()
	header := []string{"Category", "Customer_Segment", "Customer_State", "Price", "Discount"}
	rows := [][]string{
		{"Beauty", "Consumer", "California", "20", "10"},
		{"Beauty", "Consumer", "Florida", "30", "10"},
		{"Beauty", "Corporate", "Florida", "25", "20"},
		{"Beauty", "Home Office", "Texas", "15", "0"},
		{"Books", "Home Office", "Ohio", "12", "5"},
		{"Books", "Consumer", "Ohio", "14", "5"},
	}
	tbl := dataset.NewTable("orders.csv", header, rows, nil)
	res, err := analysis.Aggregate(tbl, analysis.DefaultGrouping(5))
	require.NoError(t, err)
	return tbl, res
}

func TestMarkdownSections(t *testing.T) {
	tbl, res := fixture(t)
	rep := &Report{
		Overview:    NewOverview(tbl, res),
		Predictions: analysis.DefaultRules().PredictAll(res),
	}
	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET OVERVIEW]",
		"Records: 6",
		"Categories: 2",
		"Segments: Consumer, Corporate, Home Office",
		"States: 4 unique",
		"[SEGMENT PROBABILITIES]",
		"- Beauty: *50.0%, 25.0%, 25.0%",
		"- Books: 50.0%, 0.0%, *50.0%",
		"[TOP STATES]",
		"- Beauty: *Florida: 2 orders (50%), California: 1 order (25%), Texas: 1 order (25%)",
		"- Books: *Ohio: 2 orders (100%)",
	} {
		assert.Contains(t, md, want)
	}
	assert.True(t, strings.HasPrefix(md, "[DATASET OVERVIEW]"))
	assert.NotContains(t, md, "[PREDICTIONS]")
}

func TestCombinedTableUsesCodesAndFallback(t *testing.T) {
	_, res := fixture(t)
	rep := &Report{
		Predictions: analysis.DefaultRules().PredictAll(res),
		Averages:    map[string]float64{"Beauty": 18.2},
		Fallback:    18.5,
	}
	md := rep.Markdown()
	assert.Contains(t, md, "| Beauty | *50.0%, 25.0%, 25.0% | *FL: 50, CA: 25, TX: 25 | 18.2% |")
	assert.Contains(t, md, "| Books | 50.0%, 0.0%, *50.0% | *OH: 100 | 18.5% |")
	assert.NotContains(t, md, "[SEGMENT PROBABILITIES]")
}

func TestDiscountSection(t *testing.T) {
	tbl, _ := fixture(t)
	orders, err := dataset.OrdersFrom(tbl)
	require.NoError(t, err)
	rep := &Report{Discounts: analysis.OptimizeDiscounts(orders), Notes: []string{"revenue is summed per tier"}}
	md := rep.Markdown()
	assert.Contains(t, md, "[OPTIMAL DISCOUNTS]")
	assert.Contains(t, md, "- Beauty: 10% (revenue 45.00 across 3 tiers)")
	assert.Contains(t, md, "- Books: 5%")
	assert.Contains(t, md, "[NOTES]\n- revenue is summed per tier")

	empty := (&Report{Discounts: analysis.OptimizeDiscounts(nil)}).Markdown()
	assert.Contains(t, empty, "no discount data")
}

func TestPredictionMarkdown(t *testing.T) {
	_, res := fixture(t)
	rules := analysis.DefaultRules()
	md := PredictionMarkdown(rules.Predict(res, "Books", nil))
	assert.Contains(t, md, "Best segment: Home Office (home-office-goods)")
	assert.Contains(t, md, "Best state: Ohio (default)")

	miss := PredictionMarkdown(rules.Predict(res, "Garden", nil))
	assert.Contains(t, miss, "Result: category not found")
}

func TestPct(t *testing.T) {
	cases := map[float64]string{0: "0", 10: "10", 18.5: "18.5", 66.67: "66.67", 31.25: "31.25"}
	for in, want := range cases {
		assert.Equal(t, want, pct(in))
	}
}

func TestWriteXLSX(t *testing.T) {
	tbl, res := fixture(t)
	orders, err := dataset.OrdersFrom(tbl)
	require.NoError(t, err)
	rep := &Report{
		Predictions: analysis.DefaultRules().PredictAll(res),
		Discounts:   analysis.OptimizeDiscounts(orders),
		Averages:    analysis.AverageDiscounts(orders),
		Fallback:    18.5,
	}
	p := filepath.Join(t.TempDir(), "out", "report.xlsx")
	require.NoError(t, rep.WriteXLSX(p))

	f, err := excelize.OpenFile(p)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetSegments, SheetStates, SheetDiscounts}, f.GetSheetList())

	seg, err := f.GetRows(SheetSegments)
	require.NoError(t, err)
	require.Len(t, seg, 3)
	assert.Equal(t, []string{"Beauty", "4", "0.5", "0.25", "0.25", "Consumer", "default"}, seg[1])

	states, err := f.GetRows(SheetStates)
	require.NoError(t, err)
	assert.Equal(t, "FL", states[1][3])
	assert.Equal(t, "TRUE", states[1][6])

	disc, err := f.GetRows(SheetDiscounts)
	require.NoError(t, err)
	require.Len(t, disc, 3)
	assert.Equal(t, "Beauty", disc[1][0])
	assert.Equal(t, "10", disc[1][1])
	assert.Equal(t, "10", disc[1][3])
}
