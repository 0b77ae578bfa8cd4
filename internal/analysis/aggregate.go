package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

// Grouping names the columns an aggregation groups by, distributes and ranks.
type Grouping struct {
	// GroupBy is the categorical key, usually the product category.
	GroupBy dataset.Column
	// Distribution is normalized to probabilities per group (customer segment).
	Distribution dataset.Column
	// Ranked is counted per group and truncated to TopN (customer state). Optional.
	Ranked dataset.Column
	TopN   int
}

// DefaultGrouping groups by category, distributes segments and ranks the top states.
func DefaultGrouping(topN int) Grouping {
	if topN <= 0 {
		topN = 5
	}
	return Grouping{
		GroupBy:      dataset.ColCategory,
		Distribution: dataset.ColSegment,
		Ranked:       dataset.ColState,
		TopN:         topN,
	}
}

// RankedValue is one entry of a ranked frequency list.
type RankedValue struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryAggregate is the per-group frequency summary.
type CategoryAggregate struct {
	Category string `json:"category"`
	Total    int    `json:"total_records"`
	// Probabilities maps each distribution value to count/non-empty total.
	Probabilities map[string]float64 `json:"segment_probabilities"`
	// Top is ranked by count desc, then value asc, truncated to TopN.
	Top []RankedValue `json:"top_states"`
}

// Has reports whether value appears in the distribution.
func (a *CategoryAggregate) Has(value string) bool {
	_, ok := a.Probabilities[value]
	return ok
}

// Probability returns the probability of value, 0 when absent.
func (a *CategoryAggregate) Probability(value string) float64 {
	return a.Probabilities[value]
}

// Result holds aggregates for every group in first-seen order.
type Result struct {
	Grouping   Grouping
	Records    int
	Categories []string
	groups     map[string]*CategoryAggregate
}

// Get returns the aggregate for a category.
func (r *Result) Get(category string) (*CategoryAggregate, bool) {
	a, ok := r.groups[category]
	return a, ok
}

// Lookup is Get with an UnknownCategoryError on a miss.
func (r *Result) Lookup(category string) (*CategoryAggregate, error) {
	if a, ok := r.groups[category]; ok {
		return a, nil
	}
	return nil, &UnknownCategoryError{Category: category, Known: r.Sorted()}
}

// All returns aggregates in first-seen order.
func (r *Result) All() []*CategoryAggregate {
	out := make([]*CategoryAggregate, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, r.groups[c])
	}
	return out
}

// Sorted returns category names alphabetically.
func (r *Result) Sorted() []string {
	out := append([]string(nil), r.Categories...)
	sort.Strings(out)
	return out
}

type groupAcc struct {
	total     int
	distTotal int
	dist      map[string]int
	ranked    map[string]int
}

// Aggregate groups the table by g.GroupBy and summarizes each group.
// Rows with an empty group key are skipped.
func Aggregate(t *dataset.Table, g Grouping) (*Result, error) {
	return aggregate(t, g, "")
}

// AggregateCategory aggregates a single category, failing with EmptyCategoryError
// when the table has no rows for it.
func AggregateCategory(t *dataset.Table, g Grouping, category string) (*CategoryAggregate, error) {
	r, err := aggregate(t, g, category)
	if err != nil {
		return nil, err
	}
	a, ok := r.Get(category)
	if !ok {
		return nil, &EmptyCategoryError{Category: category}
	}
	return a, nil
}

func aggregate(t *dataset.Table, g Grouping, only string) (*Result, error) {
	gIdx, err := t.Index(g.GroupBy)
	if err != nil {
		return nil, err
	}
	dIdx, err := t.Index(g.Distribution)
	if err != nil {
		return nil, err
	}
	rIdx := -1
	if g.Ranked != "" {
		if rIdx, err = t.Index(g.Ranked); err != nil {
			return nil, err
		}
	}
	topN := g.TopN
	if topN <= 0 {
		topN = 5
	}

	res := &Result{Grouping: g, groups: map[string]*CategoryAggregate{}}
	accs := map[string]*groupAcc{}
	for _, row := range t.Rows {
		key := t.Value(row, gIdx)
		if key == "" || (only != "" && key != only) {
			continue
		}
		ga := accs[key]
		if ga == nil {
			ga = &groupAcc{dist: map[string]int{}, ranked: map[string]int{}}
			accs[key] = ga
			res.Categories = append(res.Categories, key)
		}
		ga.total++
		res.Records++
		if v := t.Value(row, dIdx); v != "" {
			ga.dist[v]++
			ga.distTotal++
		}
		if rIdx >= 0 {
			if v := t.Value(row, rIdx); v != "" {
				ga.ranked[v]++
			}
		}
	}

	for _, key := range res.Categories {
		ga := accs[key]
		agg := &CategoryAggregate{Category: key, Total: ga.total, Probabilities: map[string]float64{}}
		for v, n := range ga.dist {
			agg.Probabilities[v] = float64(n) / float64(ga.distTotal)
		}
		agg.Top = rank(ga.ranked, ga.total, topN)
		res.groups[key] = agg
	}
	return res, nil
}

func rank(counts map[string]int, total, topN int) []RankedValue {
	out := make([]RankedValue, 0, len(counts))
	for v, n := range counts {
		out = append(out, RankedValue{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > topN {
		out = out[:topN]
	}
	for i := range out {
		out[i].Percentage = round(float64(out[i].Count)/float64(total)*100, 2)
	}
	return out
}

// ArgMax returns the key with the highest probability; ties go to the alphabetically first key.
func ArgMax(probs map[string]float64) (string, bool) {
	best := ""
	bestP := math.Inf(-1)
	for k, p := range probs {
		if p > bestP || (p == bestP && k < best) {
			best, bestP = k, p
		}
	}
	return best, len(probs) > 0
}

func round(x float64, places int) float64 {
	r, err := stats.Round(x, places)
	if err != nil {
		return x
	}
	return r
}

func foldIn(category string, list []string) bool {
	for _, c := range list {
		if strings.EqualFold(strings.TrimSpace(category), c) {
			return true
		}
	}
	return false
}
