package synth

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/KaramelBytes/orderlens-cli/internal/logger"
)

// DefaultRecords is the number of orders generated when none is requested.
const DefaultRecords = 5000

// Options configures a generation run.
type Options struct {
	Records int
	// Seed makes the run reproducible when Seeded is set; otherwise the clock seeds it.
	Seed   int64
	Seeded bool
	Log    *logger.Logger
}

// Generator draws weighted random orders from the catalog.
type Generator struct {
	rng *rand.Rand
	log *logger.Logger
}

// New returns a generator seeded per opt.
func New(opt Options) *Generator {
	seed := opt.Seed
	if !opt.Seeded {
		seed = time.Now().UnixNano()
	}
	log := opt.Log
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), log: log}
}

// Generate produces n orders. It stops early with ctx.Err() when ctx is done.
func (g *Generator) Generate(ctx context.Context, n int) ([]dataset.Order, error) {
	if n < 0 {
		return nil, fmt.Errorf("record count must be >= 0, got %d", n)
	}
	states := StateWeights()
	segs := make(map[string][]Weighted, len(Categories))
	for _, c := range Categories {
		segs[c] = SegmentWeights(c)
	}
	out := make([]dataset.Order, 0, n)
	for i := 0; i < n; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		o, err := g.order(states, segs)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	g.log.Component("synth").WithField("records", n).Debug("generated orders")
	return out, nil
}

func (g *Generator) order(states []Weighted, segs map[string][]Weighted) (dataset.Order, error) {
	category := Categories[g.rng.Intn(len(Categories))]
	id, err := g.customerID()
	if err != nil {
		return dataset.Order{}, err
	}
	nouns := products[category]
	name := nouns[g.rng.Intn(len(nouns))] + " " + Modifiers[g.rng.Intn(len(Modifiers))]
	state := g.pick(states)
	segment := g.pick(segs[category])
	pr := priceRanges[category]
	price, err := stats.Round(pr.Min+g.rng.Float64()*(pr.Max-pr.Min), 2)
	if err != nil {
		return dataset.Order{}, fmt.Errorf("round price: %w", err)
	}
	return dataset.Order{
		CustomerID:  id,
		ProductName: name,
		Category:    category,
		State:       state,
		Segment:     segment,
		Price:       price,
	}, nil
}

// customerID is "CUST-" plus the first 8 hex digits of a random UUID, drawn
// from the generator's source so seeded runs repeat.
func (g *Generator) customerID() (string, error) {
	u, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return "", fmt.Errorf("customer id: %w", err)
	}
	return "CUST-" + strings.ToUpper(u.String()[:8]), nil
}

// pick samples a value from normalized weights.
func (g *Generator) pick(ws []Weighted) string {
	r := g.rng.Float64()
	acc := 0.0
	for _, w := range ws {
		acc += w.Weight
		if r < acc {
			return w.Value
		}
	}
	return ws[len(ws)-1].Value
}
