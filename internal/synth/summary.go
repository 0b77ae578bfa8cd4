package synth

import (
	"sort"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

// Count is a value with its frequency.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Share is a value with its percentage of all records.
type Share struct {
	Value   string  `json:"value"`
	Percent float64 `json:"percent"`
}

// PriceStats describes the generated prices of one category.
type PriceStats struct {
	Category string  `json:"category"`
	N        int     `json:"n"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
}

// Summary is the post-generation distribution report.
type Summary struct {
	Records    int          `json:"records"`
	Categories []Count      `json:"categories"`
	Segments   []Share      `json:"segments"`
	TopStates  []Count      `json:"top_states"`
	Prices     []PriceStats `json:"prices"`
}

// Summarize counts categories, segment shares, the ten busiest states and
// per-category price statistics.
func Summarize(orders []dataset.Order) Summary {
	cats := map[string]int{}
	segs := map[string]int{}
	states := map[string]int{}
	prices := map[string][]float64{}
	for _, o := range orders {
		cats[o.Category]++
		segs[o.Segment]++
		states[o.State]++
		prices[o.Category] = append(prices[o.Category], o.Price)
	}
	s := Summary{Records: len(orders), Categories: ranked(cats, 0), TopStates: ranked(states, 10)}
	for _, c := range ranked(segs, 0) {
		pct, _ := stats.Round(float64(c.Count)/float64(len(orders))*100, 1)
		s.Segments = append(s.Segments, Share{Value: c.Value, Percent: pct})
	}
	for _, c := range s.Categories {
		sample := moremath.Sample{Xs: prices[c.Value]}
		sample.Sort()
		lo, hi := sample.Bounds()
		s.Prices = append(s.Prices, PriceStats{
			Category: c.Value,
			N:        len(sample.Xs),
			Min:      lo,
			Max:      hi,
			Mean:     sample.Mean(),
			Median:   sample.Quantile(0.5),
			StdDev:   sample.StdDev(),
		})
	}
	return s
}

// ranked sorts counts descending, ties by value, keeping at most limit (0 = all).
func ranked(m map[string]int, limit int) []Count {
	out := make([]Count, 0, len(m))
	for v, n := range m {
		out = append(out, Count{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
