package synth

import "github.com/KaramelBytes/orderlens-cli/internal/dataset"

// Categories is the fixed product catalog, in generation order.
var Categories = []string{
	"Office Supplies",
	"Furniture",
	"Technology",
	"Books",
	"Home & Kitchen",
	"Electronics",
	"Beauty",
	"Toys",
	"Clothing",
	"Sports",
}

// Modifiers are appended to a product noun to build its name.
var Modifiers = []string{"Premium", "Standard", "Basic", "Pro", "Deluxe", "Essential"}

var products = map[string][]string{
	"Office Supplies": {"Pen Set", "Notebook", "Paper Clips", "Stapler", "Binder", "Desk Organizer", "File Cabinet"},
	"Furniture":       {"Desk", "Chair", "Bookcase", "Table", "Sofa", "Cabinet", "Drawer"},
	"Technology":      {"Laptop", "Phone", "Tablet", "Monitor", "Keyboard", "Mouse", "Headphones"},
	"Books":           {"Novel", "Textbook", "Biography", "Cookbook", "Self-Help Book", "Reference Guide", "Children's Book"},
	"Home & Kitchen":  {"Blender", "Cookware", "Utensils", "Dinnerware", "Toaster", "Coffee Maker", "Knife Set"},
	"Electronics":     {"Television", "Camera", "Speaker", "Charger", "Smartwatch", "Gaming Console", "Printer"},
	"Beauty":          {"Makeup", "Skincare", "Haircare", "Fragrance", "Beauty Tool", "Nail Polish", "Face Mask"},
	"Toys":            {"Action Figure", "Board Game", "Puzzle", "Doll", "Building Blocks", "Remote Control Car", "Educational Toy"},
	"Clothing":        {"Shirt", "Pants", "Dress", "Jacket", "Sweater", "Shoes", "Accessories"},
	"Sports":          {"Ball", "Training Equipment", "Racket", "Shoes", "Apparel", "Protection Gear", "Fitness Tracker"},
}

// PriceRange is an inclusive uniform price interval.
type PriceRange struct{ Min, Max float64 }

var priceRanges = map[string]PriceRange{
	"Office Supplies": {5, 100},
	"Furniture":       {50, 500},
	"Technology":      {100, 1000},
	"Books":           {10, 50},
	"Home & Kitchen":  {20, 200},
	"Electronics":     {50, 800},
	"Beauty":          {10, 150},
	"Toys":            {15, 80},
	"Clothing":        {20, 200},
	"Sports":          {15, 300},
}

// Weighted is a value with its raw sampling weight.
type Weighted struct {
	Value  string
	Weight float64
}

// stateWeights favors states with more commercial activity. Weights are
// normalized at sampling time, so they need not sum to 1.
var stateWeights = []Weighted{
	{"California", 0.20}, {"New York", 0.11}, {"Texas", 0.10}, {"Pennsylvania", 0.06}, {"Washington", 0.05},
	{"Illinois", 0.05}, {"Florida", 0.04}, {"Ohio", 0.04}, {"Georgia", 0.03}, {"Michigan", 0.03},
}

func segments(consumer, corporate, homeOffice float64) []Weighted {
	return []Weighted{
		{dataset.SegmentConsumer, consumer},
		{dataset.SegmentCorporate, corporate},
		{dataset.SegmentHomeOffice, homeOffice},
	}
}

var segmentWeights = map[string][]Weighted{
	"Office Supplies": segments(0.52, 0.30, 0.18),
	"Furniture":       segments(0.52, 0.31, 0.17),
	"Technology":      segments(0.51, 0.30, 0.19),
	"Books":           segments(0.52, 0.30, 0.18),
	"Home & Kitchen":  segments(0.52, 0.31, 0.17),
	"Electronics":     segments(0.51, 0.30, 0.19),
	"Beauty":          segments(0.51, 0.30, 0.19),
	"Toys":            segments(0.52, 0.30, 0.18),
	"Clothing":        segments(0.52, 0.31, 0.17),
	"Sports":          segments(0.52, 0.31, 0.17),
}

// StateWeights returns the normalized state distribution.
func StateWeights() []Weighted {
	return normalize(stateWeights)
}

// SegmentWeights returns the normalized segment distribution for a category.
func SegmentWeights(category string) []Weighted {
	return normalize(segmentWeights[category])
}

// Products returns the product nouns of a category.
func Products(category string) []string {
	return append([]string(nil), products[category]...)
}

// Prices returns the price range of a category.
func Prices(category string) (PriceRange, bool) {
	r, ok := priceRanges[category]
	return r, ok
}

func normalize(ws []Weighted) []Weighted {
	total := 0.0
	for _, w := range ws {
		total += w.Weight
	}
	out := make([]Weighted, len(ws))
	for i, w := range ws {
		out[i] = Weighted{Value: w.Value, Weight: w.Weight / total}
	}
	return out
}
