// Package ingest orchestrates one workbook upload: sheet selection,
// header-row detection, column mapping, per-row parsing and the
// analytics pass. Individual bad rows are skipped quietly; the run as a
// whole fails only on the hard conditions (unreadable file, too few
// rows, essential columns unmappable, zero surviving companies).
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"portfolio-insights-go/internal/analytics"
	"portfolio-insights-go/internal/columnmap"
	"portfolio-insights-go/internal/logger"
	"portfolio-insights-go/internal/rowparse"
	"portfolio-insights-go/internal/types"
)

// Fund workbooks keep the portfolio on this sheet; a trailing-space
// variant shows up in the wild.
const mainSheetName = "Main Page"

// Header detection only looks this deep; real sheets prepend at most a
// few banner/title rows.
const headerScanRows = 5

// FromFile ingests a workbook from disk.
func FromFile(path string) ([]*types.CompanyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f)
}

// FromReader ingests a workbook from an in-memory upload.
func FromReader(r io.Reader) ([]*types.CompanyRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f)
}

func fromWorkbook(f *excelize.File) ([]*types.CompanyRecord, error) {
	log := logger.New().WithComponent("ingest")

	sheet, err := pickSheet(f)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q needs a header row and at least one data row, got %d rows", sheet, len(rows))
	}

	headerIdx := DetectHeaderRow(rows)
	mapping, err := columnmap.Map(rows[headerIdx])
	if err != nil {
		return nil, err
	}
	log.WithField("sheet", sheet).
		WithField("header_row", headerIdx).
		WithField("mapped_columns", mapping.Len()).
		Info("workbook columns resolved")

	var out []*types.CompanyRecord
	for i := headerIdx + 1; i < len(rows); i++ {
		rec, ok := rowparse.Parse(rows[i], mapping, len(out)+1)
		if !ok {
			// empty row or no company name; skip quietly
			continue
		}
		rec.Analytics = analytics.Compute(rec)
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid company rows in sheet %q: every row was empty or missing a company name", sheet)
	}

	log.WithField("companies", len(out)).Info("ingestion complete")
	return out, nil
}

// pickSheet prefers the "Main Page" sheet (tolerating stray spaces) and
// falls back to the first sheet.
func pickSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	for _, s := range sheets {
		if strings.TrimSpace(s) == mainSheetName {
			return s, nil
		}
	}
	return sheets[0], nil
}

// DetectHeaderRow returns the index of the row with the most non-empty
// cells among the first headerScanRows rows. Ties keep the earliest
// row, so a clean sheet still uses row 0.
func DetectHeaderRow(rows [][]string) int {
	limit := headerScanRows
	if len(rows) < limit {
		limit = len(rows)
	}
	best, bestCount := 0, -1
	for i := 0; i < limit; i++ {
		count := 0
		for _, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}
