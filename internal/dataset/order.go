package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/orderlens-cli/internal/utils"
)

// Segment values used by order exports.
const (
	SegmentConsumer   = "Consumer"
	SegmentCorporate  = "Corporate"
	SegmentHomeOffice = "Home Office"
)

// Segments lists customer segments in report order.
var Segments = []string{SegmentConsumer, SegmentCorporate, SegmentHomeOffice}

// Order is a single e-commerce order record.
type Order struct {
	CustomerID  string   `json:"customer_id,omitempty"`
	ProductName string   `json:"product_name,omitempty"`
	Category    string   `json:"category"`
	State       string   `json:"customer_state,omitempty"`
	Segment     string   `json:"customer_segment,omitempty"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount,omitempty"`
	FinalPrice  *float64 `json:"final_price,omitempty"`
}

// OrdersFrom converts table rows into orders. Only the category column is required;
// numeric cells that fail to parse are reported with their row number.
func OrdersFrom(t *Table) ([]Order, error) {
	catIdx, err := t.Index(ColCategory)
	if err != nil {
		return nil, err
	}
	opt := func(c Column) int {
		if i, err := t.Index(c); err == nil {
			return i
		}
		return -1
	}
	var (
		segIdx   = opt(ColSegment)
		stateIdx = opt(ColState)
		priceIdx = opt(ColPrice)
		discIdx  = opt(ColDiscount)
		finalIdx = opt(ColFinalPrice)
		idIdx    = opt(ColCustomerID)
		nameIdx  = opt(ColProductName)
	)
	out := make([]Order, 0, len(t.Rows))
	for i, row := range t.Rows {
		o := Order{
			CustomerID:  t.Value(row, idIdx),
			ProductName: t.Value(row, nameIdx),
			Category:    t.Value(row, catIdx),
			State:       t.Value(row, stateIdx),
			Segment:     t.Value(row, segIdx),
		}
		if v := t.Value(row, priceIdx); v != "" {
			f, ok := ParseNumber(v)
			if !ok {
				return nil, fmt.Errorf("row %d: invalid price %q", i+1, v)
			}
			o.Price = f
		}
		if v := t.Value(row, discIdx); v != "" {
			f, ok := ParseNumber(v)
			if !ok || f < 0 || f > 100 {
				return nil, fmt.Errorf("row %d: invalid discount %q", i+1, v)
			}
			o.Discount = &f
		}
		if v := t.Value(row, finalIdx); v != "" {
			f, ok := ParseNumber(v)
			if !ok {
				return nil, fmt.Errorf("row %d: invalid final price %q", i+1, v)
			}
			o.FinalPrice = &f
		}
		out = append(out, o)
	}
	return out, nil
}

// orderHeader is the column layout written for generated datasets.
var orderHeader = []string{"Customer_ID", "Product_Name", "Category", "Customer_State", "Customer_Segment", "Price"}

func orderRow(o Order) []string {
	return []string{o.CustomerID, o.ProductName, o.Category, o.State, o.Segment, strconv.FormatFloat(o.Price, 'f', 2, 64)}
}

// OrdersTable builds an in-memory table with the generated-dataset layout.
func OrdersTable(name string, orders []Order) *Table {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow(o))
	}
	return NewTable(name, append([]string(nil), orderHeader...), rows, nil)
}

// WriteCSV writes orders to path atomically.
func WriteCSV(path string, orders []Order) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(orderHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range orders {
		if err := w.Write(orderRow(o)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
