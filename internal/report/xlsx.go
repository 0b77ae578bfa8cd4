package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/orderlens-cli/internal/dataset"
	"github.com/KaramelBytes/orderlens-cli/internal/utils"
)

// Sheet names of the exported workbook.
const (
	SheetSegments  = "Segments"
	SheetStates    = "States"
	SheetDiscounts = "Discounts"
)

// WriteXLSX exports predictions and discounts to a workbook at path.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSegments); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for _, s := range []string{SheetStates, SheetDiscounts} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}

	preds := sortedPredictions(r.Predictions)
	segRows := [][]interface{}{{"Category", "Records", dataset.SegmentConsumer, dataset.SegmentCorporate, dataset.SegmentHomeOffice, "Best Segment", "Rule"}}
	stateRows := [][]interface{}{{"Category", "Rank", "State", "Code", "Count", "Percentage", "Best"}}
	for _, p := range preds {
		if !p.Found {
			continue
		}
		segRows = append(segRows, []interface{}{
			p.Category,
			p.Total,
			p.SegmentProbabilities[dataset.SegmentConsumer],
			p.SegmentProbabilities[dataset.SegmentCorporate],
			p.SegmentProbabilities[dataset.SegmentHomeOffice],
			p.BestSegment,
			p.SegmentRule,
		})
		for i, rv := range p.TopStates {
			stateRows = append(stateRows, []interface{}{
				p.Category, i + 1, rv.Value, dataset.ShortState(rv.Value), rv.Count, rv.Percentage, rv.Value == p.BestState,
			})
		}
	}
	if err := writeRows(f, SheetSegments, segRows); err != nil {
		return err
	}
	if err := writeRows(f, SheetStates, stateRows); err != nil {
		return err
	}
	if err := writeRows(f, SheetDiscounts, r.discountRows()); err != nil {
		return err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func (r *Report) discountRows() [][]interface{} {
	rows := [][]interface{}{{"Category", "Optimal Discount", "Revenue", "Average Discount"}}
	names := map[string]struct{}{}
	if r.Discounts != nil {
		for _, c := range r.Discounts.Categories {
			names[c] = struct{}{}
		}
	}
	if r.Combined() {
		for _, p := range r.Predictions {
			if p.Found {
				names[p.Category] = struct{}{}
			}
		}
	}
	sorted := make([]string, 0, len(names))
	for c := range names {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)
	for _, c := range sorted {
		row := []interface{}{c, "", "", ""}
		if r.Discounts != nil {
			if cd, ok := r.Discounts.Get(c); ok {
				row[1], row[2] = cd.Optimal, cd.Revenue
			}
		}
		if r.Combined() {
			row[3] = r.Discount(c)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx %s: %w", sheet, err)
		}
	}
	return nil
}
