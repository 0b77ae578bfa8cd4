package analysis

import (
	"encoding/json"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

// RuleInput carries per-call values a rule may consult.
type RuleInput struct {
	// Price is the caller's price, or the rule set's default when none was given.
	Price     float64
	Threshold float64
}

// SegmentRule overrides the default segment choice for a set of categories.
type SegmentRule struct {
	Name       string
	Categories []string
	Choose     func(agg *CategoryAggregate, in RuleInput) (string, bool)
}

// StateRule overrides the default state choice for a set of categories.
type StateRule struct {
	Name       string
	Categories []string
	Choose     func(agg *CategoryAggregate) (string, bool)
}

// RuleSet is an ordered list of overrides; the first matching rule wins.
type RuleSet struct {
	Segment []SegmentRule
	State   []StateRule
	// TechDefaultPrice stands in for the price when a caller gives none.
	TechDefaultPrice float64
	// TechPriceThreshold is the price above which tech orders count as corporate.
	TechPriceThreshold float64
}

// Names of the built-in rules, reported alongside each selection.
const (
	RuleDefault           = "default"
	RuleHighPricedTech    = "high-priced-tech"
	RuleHomeOfficeGoods   = "home-office-goods"
	RuleCorporateFurnish  = "corporate-furniture"
	RuleSecondState       = "second-ranked-state"
	RuleFloridaBeauty     = "florida-beauty"
	defaultTechPrice      = 250
	defaultTechPriceLimit = 200
)

// DefaultRules returns the built-in category overrides.
func DefaultRules() RuleSet {
	return RuleSet{
		Segment: []SegmentRule{
			{
				Name:       RuleHighPricedTech,
				Categories: []string{"Technology", "Electronics"},
				Choose: func(_ *CategoryAggregate, in RuleInput) (string, bool) {
					return dataset.SegmentCorporate, in.Price > in.Threshold
				},
			},
			{
				Name:       RuleHomeOfficeGoods,
				Categories: []string{"Books", "Office Supplies"},
				Choose:     presentSegment(dataset.SegmentHomeOffice),
			},
			{
				Name:       RuleCorporateFurnish,
				Categories: []string{"Furniture"},
				Choose:     presentSegment(dataset.SegmentCorporate),
			},
		},
		State: []StateRule{
			{
				Name:       RuleSecondState,
				Categories: []string{"Sports", "Clothing"},
				Choose: func(agg *CategoryAggregate) (string, bool) {
					if len(agg.Top) < 2 {
						return "", false
					}
					return agg.Top[1].Value, true
				},
			},
			{
				Name:       RuleFloridaBeauty,
				Categories: []string{"Beauty"},
				Choose:     preferState("Florida"),
			},
		},
		TechDefaultPrice:   defaultTechPrice,
		TechPriceThreshold: defaultTechPriceLimit,
	}
}

// presentSegment picks segment only when the category has seen it.
func presentSegment(segment string) func(*CategoryAggregate, RuleInput) (string, bool) {
	return func(agg *CategoryAggregate, _ RuleInput) (string, bool) {
		return segment, agg.Has(segment)
	}
}

// preferState picks the ranked entry for state, matching full names and postal codes.
func preferState(state string) func(*CategoryAggregate) (string, bool) {
	want, _ := dataset.CanonicalState(state)
	return func(agg *CategoryAggregate) (string, bool) {
		for _, rv := range agg.Top {
			if name, ok := dataset.CanonicalState(rv.Value); ok && name == want {
				return rv.Value, true
			}
		}
		return "", false
	}
}

// BestSegment applies segment rules, falling back to the most probable segment.
// price may be nil, in which case TechDefaultPrice is used.
func (rs RuleSet) BestSegment(agg *CategoryAggregate, price *float64) (segment, rule string) {
	in := RuleInput{Price: rs.TechDefaultPrice, Threshold: rs.TechPriceThreshold}
	if price != nil {
		in.Price = *price
	}
	for _, r := range rs.Segment {
		if !foldIn(agg.Category, r.Categories) {
			continue
		}
		if s, ok := r.Choose(agg, in); ok {
			return s, r.Name
		}
	}
	s, _ := ArgMax(agg.Probabilities)
	return s, RuleDefault
}

// BestState applies state rules, falling back to the top-ranked state.
func (rs RuleSet) BestState(agg *CategoryAggregate) (state, rule string) {
	for _, r := range rs.State {
		if !foldIn(agg.Category, r.Categories) {
			continue
		}
		if s, ok := r.Choose(agg); ok {
			return s, r.Name
		}
	}
	if len(agg.Top) == 0 {
		return "", RuleDefault
	}
	return agg.Top[0].Value, RuleDefault
}

// Prediction is the recommended segment and state for a category.
type Prediction struct {
	Category             string             `json:"category"`
	Found                bool               `json:"found"`
	Total                int                `json:"total_records,omitempty"`
	BestSegment          string             `json:"best_segment,omitempty"`
	SegmentRule          string             `json:"segment_rule,omitempty"`
	BestState            string             `json:"best_state,omitempty"`
	StateRule            string             `json:"state_rule,omitempty"`
	SegmentProbabilities map[string]float64 `json:"segment_probabilities,omitempty"`
	TopStates            []RankedValue      `json:"top_states,omitempty"`
	Error                string             `json:"error,omitempty"`
}

// MarshalJSON writes best_segment and best_state as null when nothing was selected.
func (p Prediction) MarshalJSON() ([]byte, error) {
	type plain Prediction
	return json.Marshal(struct {
		plain
		BestSegment *string `json:"best_segment"`
		BestState   *string `json:"best_state"`
	}{plain(p), selection(p.BestSegment), selection(p.BestState)})
}

func selection(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// Predict selects the best segment and state for category. An unknown category
// yields a Prediction with Found=false and empty selections, never an error.
func (rs RuleSet) Predict(res *Result, category string, price *float64) Prediction {
	agg, ok := res.Get(category)
	if !ok {
		return Prediction{Category: category, Error: "category not found"}
	}
	seg, segRule := rs.BestSegment(agg, price)
	st, stRule := rs.BestState(agg)
	return Prediction{
		Category:             category,
		Found:                true,
		Total:                agg.Total,
		BestSegment:          seg,
		SegmentRule:          segRule,
		BestState:            st,
		StateRule:            stRule,
		SegmentProbabilities: agg.Probabilities,
		TopStates:            agg.Top,
	}
}

// PredictAll predicts every aggregated category in alphabetical order.
func (rs RuleSet) PredictAll(res *Result) []Prediction {
	out := make([]Prediction, 0, len(res.Categories))
	for _, c := range res.Sorted() {
		out = append(out, rs.Predict(res, c, nil))
	}
	return out
}
