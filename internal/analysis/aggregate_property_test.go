package analysis

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

var (
	propSegments = []string{"Consumer", "Corporate", "Home Office"}
	propStates   = []string{"California", "Texas", "Florida", "New York", "Ohio", "Illinois", "Georgia", "Nevada"}
)

// tableFromCodes decodes each int into a (category, segment, state) row.
func tableFromCodes(codes []int) *dataset.Table {
	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		cat := "Books"
		if c%2 == 1 {
			cat = "Toys"
		}
		seg := propSegments[(c/2)%len(propSegments)]
		st := propStates[(c/6)%len(propStates)]
		rows = append(rows, []string{cat, seg, st})
	}
	return dataset.NewTable("prop.csv", header, rows, nil)
}

func TestSegmentProbabilitiesSumToOne(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("segment probabilities sum to 1", prop.ForAll(
		func(codes []int) bool {
			res, err := Aggregate(tableFromCodes(codes), DefaultGrouping(5))
			if err != nil {
				return false
			}
			for _, agg := range res.All() {
				sum := 0.0
				for _, p := range agg.Probabilities {
					sum += p
				}
				if math.Abs(sum-1) > 1e-9 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}

func TestTopStatesBoundedAndSorted(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("top-N is at most N long and sorted by count", prop.ForAll(
		func(codes []int, n int) bool {
			res, err := Aggregate(tableFromCodes(codes), DefaultGrouping(n))
			if err != nil {
				return false
			}
			for _, agg := range res.All() {
				if len(agg.Top) > n {
					return false
				}
				for i := 1; i < len(agg.Top); i++ {
					prev, cur := agg.Top[i-1], agg.Top[i]
					if prev.Count < cur.Count || (prev.Count == cur.Count && prev.Value > cur.Value) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestChosenTierAlwaysObserved(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("optimal discount is an observed tier", prop.ForAll(
		func(prices []float64, tiers []int) bool {
			var orders []dataset.Order
			seen := map[float64]bool{}
			for i := 0; i < len(prices) && i < len(tiers); i++ {
				d := float64(tiers[i] * 5)
				seen[d] = true
				orders = append(orders, dataset.Order{Category: "Books", Price: prices[i], Discount: &d})
			}
			dt := OptimizeDiscounts(orders)
			cd, ok := dt.Get("Books")
			if !ok {
				return len(orders) == 0
			}
			return seen[cd.Optimal]
		},
		gen.SliceOf(gen.Float64Range(1, 1000)),
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.TestingRun(t)
}
