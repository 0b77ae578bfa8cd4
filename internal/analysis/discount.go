package analysis

import (
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
)

// TierRevenue is the summed revenue of one discount tier within a category.
type TierRevenue struct {
	Discount float64 `json:"discount"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
}

// CategoryDiscount is the optimal tier of a category with every observed tier.
type CategoryDiscount struct {
	Category string        `json:"category"`
	Optimal  float64       `json:"optimal_discount"`
	Revenue  float64       `json:"revenue"`
	Tiers    []TierRevenue `json:"tiers"`
}

// DiscountTable maps categories to their revenue-maximizing discount tier.
// Revenue is summed, not averaged, so tiers with more orders are favored.
type DiscountTable struct {
	Categories []string
	byCategory map[string]*CategoryDiscount
}

// OptimizeDiscounts groups orders by (category, discount) and keeps the tier with
// the highest summed revenue. Orders without a discount are skipped. Equal sums
// resolve to the lower tier.
func OptimizeDiscounts(orders []dataset.Order) *DiscountTable {
	dt := &DiscountTable{byCategory: map[string]*CategoryDiscount{}}
	tiers := map[string]map[float64]*TierRevenue{}
	for _, o := range orders {
		if o.Category == "" || o.Discount == nil {
			continue
		}
		m, ok := tiers[o.Category]
		if !ok {
			m = map[float64]*TierRevenue{}
			tiers[o.Category] = m
			dt.Categories = append(dt.Categories, o.Category)
		}
		d := *o.Discount
		tr := m[d]
		if tr == nil {
			tr = &TierRevenue{Discount: d}
			m[d] = tr
		}
		tr.Revenue += revenue(o)
		tr.Orders++
	}
	for _, c := range dt.Categories {
		cd := &CategoryDiscount{Category: c}
		for _, tr := range tiers[c] {
			cd.Tiers = append(cd.Tiers, *tr)
		}
		sort.Slice(cd.Tiers, func(i, j int) bool { return cd.Tiers[i].Discount < cd.Tiers[j].Discount })
		best := cd.Tiers[0]
		for _, tr := range cd.Tiers[1:] {
			if tr.Revenue > best.Revenue {
				best = tr
			}
		}
		cd.Optimal, cd.Revenue = best.Discount, best.Revenue
		dt.byCategory[c] = cd
	}
	return dt
}

// OptimizeDiscountsTable converts the table to orders and optimizes them. The table
// must provide category, discount and either final_price or price.
func OptimizeDiscountsTable(t *dataset.Table) (*DiscountTable, error) {
	if err := t.Require(dataset.ColCategory, dataset.ColDiscount); err != nil {
		return nil, err
	}
	if !t.Has(dataset.ColFinalPrice) {
		if _, err := t.Index(dataset.ColPrice); err != nil {
			_, err = t.Index(dataset.ColFinalPrice)
			return nil, err
		}
	}
	orders, err := dataset.OrdersFrom(t)
	if err != nil {
		return nil, err
	}
	return OptimizeDiscounts(orders), nil
}

func revenue(o dataset.Order) float64 {
	if o.FinalPrice != nil {
		return *o.FinalPrice
	}
	return o.Price * (1 - *o.Discount/100)
}

// Get returns the optimization detail for a category.
func (dt *DiscountTable) Get(category string) (*CategoryDiscount, bool) {
	cd, ok := dt.byCategory[category]
	return cd, ok
}

// Lookup is Get with an UnknownCategoryError on a miss.
func (dt *DiscountTable) Lookup(category string) (*CategoryDiscount, error) {
	if cd, ok := dt.byCategory[category]; ok {
		return cd, nil
	}
	known := append([]string(nil), dt.Categories...)
	sort.Strings(known)
	return nil, &UnknownCategoryError{Category: category, Known: known}
}

// Optimal returns category → optimal discount.
func (dt *DiscountTable) Optimal() map[string]float64 {
	out := make(map[string]float64, len(dt.byCategory))
	for c, cd := range dt.byCategory {
		out[c] = cd.Optimal
	}
	return out
}

// All returns per-category results sorted by category name.
func (dt *DiscountTable) All() []*CategoryDiscount {
	names := append([]string(nil), dt.Categories...)
	sort.Strings(names)
	out := make([]*CategoryDiscount, 0, len(names))
	for _, c := range names {
		out = append(out, dt.byCategory[c])
	}
	return out
}

// Predict returns the optimal discount for category. An unseen category gets the
// mean of all known optimal discounts; fallback reports which path was taken.
func (dt *DiscountTable) Predict(category string) (discount float64, fallback bool, err error) {
	if cd, ok := dt.byCategory[category]; ok {
		return cd.Optimal, false, nil
	}
	d, err := FallbackDiscount(dt.Optimal())
	return d, true, err
}

// FallbackDiscount is the arithmetic mean of known discounts.
func FallbackDiscount(known map[string]float64) (float64, error) {
	if len(known) == 0 {
		return 0, ErrNoDiscounts
	}
	data := make(stats.Float64Data, 0, len(known))
	for _, v := range known {
		data = append(data, v)
	}
	m, err := stats.Mean(data)
	if err != nil {
		return 0, ErrNoDiscounts
	}
	return m, nil
}

// discountPools are the tiers a category typically runs, repeated by frequency.
var discountPools = []struct {
	categories []string
	tiers      []float64
}{
	{[]string{"Books", "Office Supplies"}, []float64{0, 0, 0, 5, 5, 10, 15, 20}},
	{[]string{"Electronics", "Technology"}, []float64{0, 0, 0, 0, 5, 5, 10, 15}},
	{[]string{"Clothing", "Sports"}, []float64{5, 10, 15, 15, 20, 20, 25, 30}},
	{[]string{"Beauty"}, []float64{0, 5, 5, 10, 10, 15, 20, 25}},
	{[]string{"Home & Kitchen", "Furniture"}, []float64{0, 5, 10, 10, 15, 20, 25, 30}},
	{[]string{"Toys"}, []float64{0, 0, 5, 10, 15, 20, 25, 50}},
}

var genericPool = []float64{0, 5, 10, 15, 20, 25, 30, 50}

// DiscountPool returns the simulated tier pool for a category.
func DiscountPool(category string) []float64 {
	for _, p := range discountPools {
		if foldIn(category, p.categories) {
			return p.tiers
		}
	}
	return genericPool
}

// SimulateDiscounts returns a copy of orders where each order without a discount
// draws one uniformly from its category pool.
func SimulateDiscounts(orders []dataset.Order, rng *rand.Rand) []dataset.Order {
	out := make([]dataset.Order, len(orders))
	copy(out, orders)
	for i := range out {
		if out[i].Discount != nil {
			continue
		}
		pool := DiscountPool(out[i].Category)
		d := pool[rng.Intn(len(pool))]
		out[i].Discount = &d
	}
	return out
}

// AverageDiscounts returns the mean discount per category rounded to one decimal.
// Orders without a discount are ignored.
func AverageDiscounts(orders []dataset.Order) map[string]float64 {
	sums := map[string]stats.Float64Data{}
	for _, o := range orders {
		if o.Category == "" || o.Discount == nil {
			continue
		}
		sums[o.Category] = append(sums[o.Category], *o.Discount)
	}
	out := make(map[string]float64, len(sums))
	for c, data := range sums {
		m, err := stats.Mean(data)
		if err != nil {
			continue
		}
		out[c] = round(m, 1)
	}
	return out
}

// DefaultAverageDiscounts is the reference table used when no discount data is available.
func DefaultAverageDiscounts() map[string]float64 {
	return map[string]float64{
		"Sports":          16.9,
		"Clothing":        21.5,
		"Toys":            18.6,
		"Beauty":          18.2,
		"Books":           19.1,
		"Home & Kitchen":  18.3,
		"Electronics":     18.3,
		"Office Supplies": 19.2,
		"Furniture":       17.8,
		"Technology":      18.8,
	}
}
