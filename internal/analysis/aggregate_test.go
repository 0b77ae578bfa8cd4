package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

var header = []string{"Category", "Customer_Segment", "Customer_State"}

func rowsOf(category string, segState ...string) [][]string {
	var out [][]string
	for i := 0; i+1 < len(segState); i += 2 {
		out = append(out, []string{category, segState[i], segState[i+1]})
	}
	return out
}

func repeat(category, segment, state string, n int) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = []string{category, segment, state}
	}
	return out
}

func concat(parts ...[][]string) [][]string {
	var out [][]string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func beautyTable() *dataset.Table {
	rows := concat(
		repeat("Beauty", "Consumer", "CA", 5),
		repeat("Beauty", "Consumer", "FL", 4),
		repeat("Beauty", "Corporate", "TX", 3),
		repeat("Beauty", "Home Office", "NY", 2),
		repeat("Beauty", "Consumer", "OH", 1),
		repeat("Beauty", "Consumer", "WA", 1),
	)
	return dataset.NewTable("beauty.csv", header, rows, nil)
}

func TestAggregateProbabilitiesAndTopStates(t *testing.T) {
	res, err := Aggregate(beautyTable(), DefaultGrouping(5))
	require.NoError(t, err)
	require.Equal(t, []string{"Beauty"}, res.Categories)
	assert.Equal(t, 16, res.Records)

	agg, ok := res.Get("Beauty")
	require.True(t, ok)
	assert.Equal(t, 16, agg.Total)
	assert.InDelta(t, 11.0/16, agg.Probability("Consumer"), 1e-12)
	assert.InDelta(t, 3.0/16, agg.Probability("Corporate"), 1e-12)
	assert.InDelta(t, 2.0/16, agg.Probability("Home Office"), 1e-12)

	require.Len(t, agg.Top, 5)
	var got []string
	for _, rv := range agg.Top {
		got = append(got, rv.Value)
	}
	// OH and WA tie on 1; OH sorts first.
	assert.Equal(t, []string{"CA", "FL", "TX", "NY", "OH"}, got)
	assert.Equal(t, 31.25, agg.Top[0].Percentage)
	assert.Equal(t, 6.25, agg.Top[4].Percentage)
}

func TestAggregateFirstSeenOrderAndSkipsEmptyCells(t *testing.T) {
	rows := concat(
		rowsOf("Toys", "Consumer", "Texas", "", "Texas", "Corporate", ""),
		rowsOf("Books", "Home Office", "Ohio"),
		rowsOf("", "Consumer", "Ohio"),
	)
	res, err := Aggregate(dataset.NewTable("mixed.csv", header, rows, nil), DefaultGrouping(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"Toys", "Books"}, res.Categories)
	assert.Equal(t, []string{"Books", "Toys"}, res.Sorted())
	assert.Equal(t, 4, res.Records)

	toys, _ := res.Get("Toys")
	assert.Equal(t, 3, toys.Total)
	assert.InDelta(t, 0.5, toys.Probability("Consumer"), 1e-12)
	assert.InDelta(t, 0.5, toys.Probability("Corporate"), 1e-12)
	require.Len(t, toys.Top, 1)
	assert.Equal(t, RankedValue{Value: "Texas", Count: 2, Percentage: 66.67}, toys.Top[0])
}

func TestAggregateMissingColumn(t *testing.T) {
	tbl := dataset.NewTable("x.csv", []string{"Category", "Customer_State"}, rowsOf("Toys", "Ohio"), nil)
	_, err := Aggregate(tbl, DefaultGrouping(5))
	var mc *dataset.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, string(dataset.ColSegment), mc.Column)
	assert.Equal(t, []string{"Category", "Customer_State"}, mc.Available)
}

func TestAggregateCategory(t *testing.T) {
	agg, err := AggregateCategory(beautyTable(), DefaultGrouping(5), "Beauty")
	require.NoError(t, err)
	assert.Equal(t, 16, agg.Total)

	_, err = AggregateCategory(beautyTable(), DefaultGrouping(5), "Garden")
	var ec *EmptyCategoryError
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "Garden", ec.Category)
}

func TestLookupUnknownCategory(t *testing.T) {
	res, err := Aggregate(beautyTable(), DefaultGrouping(5))
	require.NoError(t, err)
	_, err = res.Lookup("Garden")
	var uc *UnknownCategoryError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, []string{"Beauty"}, uc.Known)
}

func TestArgMax(t *testing.T) {
	cases := []struct {
		name  string
		probs map[string]float64
		want  string
		ok    bool
	}{
		{"empty", nil, "", false},
		{"single", map[string]float64{"Consumer": 1}, "Consumer", true},
		{"clear winner", map[string]float64{"Consumer": 0.2, "Corporate": 0.5, "Home Office": 0.3}, "Corporate", true},
		{"tie alphabetical", map[string]float64{"Home Office": 0.5, "Corporate": 0.5}, "Corporate", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ArgMax(tc.probs)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
