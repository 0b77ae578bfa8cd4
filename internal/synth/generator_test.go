package synth

import (
	"context"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/KaramelBytes/orderlens-cli/internal/analysis"
	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCountsSum(t *testing.T) {
	orders, err := New(Options{Seed: 1, Seeded: true}).Generate(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, orders, 1000)

	sum := 0
	for _, c := range Summarize(orders).Categories {
		sum += c.Count
	}
	assert.Equal(t, 1000, sum)
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	a, err := New(Options{Seed: 42, Seeded: true}).Generate(context.Background(), 200)
	require.NoError(t, err)
	b, err := New(Options{Seed: 42, Seeded: true}).Generate(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := New(Options{Seed: 43, Seeded: true}).Generate(context.Background(), 200)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateFieldShapes(t *testing.T) {
	orders, err := New(Options{Seed: 9, Seeded: true}).Generate(context.Background(), 500)
	require.NoError(t, err)
	idRe := regexp.MustCompile(`^CUST-[0-9A-F]{8}$`)
	for _, o := range orders {
		assert.Regexp(t, idRe, o.CustomerID)

		pr, ok := Prices(o.Category)
		require.True(t, ok, "unknown category %q", o.Category)
		assert.GreaterOrEqual(t, o.Price, pr.Min)
		assert.LessOrEqual(t, o.Price, pr.Max)
		assert.InDelta(t, o.Price, math.Round(o.Price*100)/100, 1e-9)

		noun, mod, found := cutLast(o.ProductName)
		require.True(t, found, o.ProductName)
		assert.Contains(t, Products(o.Category), noun)
		assert.Contains(t, Modifiers, mod)

		assert.Contains(t, []string{"Consumer", "Corporate", "Home Office"}, o.Segment)
	}
}

func cutLast(s string) (string, string, bool) {
	i := strings.LastIndex(s, " ")
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

func TestStateFrequenciesConverge(t *testing.T) {
	const n = 50000
	orders, err := New(Options{Seed: 7, Seeded: true}).Generate(context.Background(), n)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, o := range orders {
		counts[o.State]++
	}
	for _, w := range StateWeights() {
		got := float64(counts[w.Value]) / n
		assert.InDelta(t, w.Weight, got, 0.01, "state %s", w.Value)
	}
}

func TestNormalizedWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range StateWeights() {
		sum += w.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	for _, c := range Categories {
		sum = 0
		for _, w := range SegmentWeights(c) {
			sum += w.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-12, c)
	}
}

func TestGenerateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Generate(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = New(Options{}).Generate(context.Background(), -1)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	orders, err := New(Options{Seed: 3, Seeded: true}).Generate(context.Background(), 2000)
	require.NoError(t, err)
	s := Summarize(orders)
	assert.Equal(t, 2000, s.Records)
	assert.LessOrEqual(t, len(s.TopStates), 10)
	assert.Len(t, s.Segments, 3)
	require.Len(t, s.Prices, len(s.Categories))
	for _, p := range s.Prices {
		assert.LessOrEqual(t, p.Min, p.Median)
		assert.LessOrEqual(t, p.Median, p.Max)
		assert.True(t, p.Mean >= p.Min && p.Mean <= p.Max)
	}
	for i := 1; i < len(s.Categories); i++ {
		assert.GreaterOrEqual(t, s.Categories[i-1].Count, s.Categories[i].Count)
	}
}

func TestGeneratedOrdersAggregateInMemory(t *testing.T) {
	orders, err := New(Options{Seed: 9, Seeded: true}).Generate(context.Background(), 600)
	require.NoError(t, err)

	tbl := dataset.OrdersTable("generated", orders)
	require.Equal(t, 600, tbl.Len())
	res, err := analysis.Aggregate(tbl, analysis.DefaultGrouping(5))
	require.NoError(t, err)
	assert.Equal(t, 600, res.Records)

	total := 0
	for _, cat := range res.Categories {
		assert.Contains(t, Categories, cat)
		agg, ok := res.Get(cat)
		require.True(t, ok)
		total += agg.Total
		sum := 0.0
		for _, p := range agg.Probabilities {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
	assert.Equal(t, 600, total)
}
