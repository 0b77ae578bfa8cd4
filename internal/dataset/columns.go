package dataset

import (
	"regexp"
	"strings"
)

// Column is a canonical column name. Loaders map header cells onto these via aliases.
type Column string

const (
	ColCategory    Column = "category"
	ColSegment     Column = "customer_segment"
	ColState       Column = "customer_state"
	ColPrice       Column = "price"
	ColDiscount    Column = "discount"
	ColFinalPrice  Column = "final_price"
	ColCustomerID  Column = "customer_id"
	ColProductName Column = "product_name"
)

// DefaultAliases lists the header spellings seen across order exports.
// Matching ignores case, punctuation and unit suffixes such as "(%)" or "(Rs.)".
func DefaultAliases() map[Column][]string {
	return map[Column][]string{
		ColCategory:    {"category", "category_name", "product_category"},
		ColSegment:     {"customer_segment", "segment"},
		ColState:       {"customer_state", "state"},
		ColPrice:       {"price", "original_price"},
		ColDiscount:    {"discount", "discount (%)", "discount_percent"},
		ColFinalPrice:  {"final_price", "final_price(rs.)"},
		ColCustomerID:  {"customer_id"},
		ColProductName: {"product_name"},
	}
}

// aliasIndex maps normalized header keys to canonical columns.
func aliasIndex(extra map[Column][]string) map[string]Column {
	idx := make(map[string]Column)
	add := func(src map[Column][]string) {
		for col, names := range src {
			idx[normKey(string(col))] = col
			for _, n := range names {
				idx[normKey(n)] = col
			}
		}
	}
	add(DefaultAliases())
	add(extra)
	return idx
}

// resolveHeader returns the canonical column for a header cell, or the
// normalized cell itself when no alias matches.
func resolveHeader(cell string, idx map[string]Column) Column {
	raw := strings.TrimSpace(cell)
	if c, ok := idx[normKey(raw)]; ok {
		return c
	}
	clean, _ := splitUnits(raw)
	if c, ok := idx[normKey(clean)]; ok {
		return c
	}
	return Column(normKey(clean))
}

func normKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var unitPatterns = []struct {
	re   *regexp.Regexp
	pick int
}{
	{regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`), 2},  // e.g., Discount (%)
	{regexp.MustCompile(`^(.*?)\s*\[([^\]]+)\]\s*$`), 2}, // e.g., Price [USD]
}

func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, p := range unitPatterns {
		if m := p.re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[p.pick])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
