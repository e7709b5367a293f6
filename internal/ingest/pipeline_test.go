package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into a single-sheet workbook and returns
// the serialized bytes.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	writeRows(t, f, sheet, rows)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
}

var templateHeader = []interface{}{
	"COMPANY", "Total Investment ($ in Thousands)", "Equity Stake % (Fully Diluted)", "Implied MOIC (x)",
}

func TestEndToEndTemplateRow(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{
		templateHeader,
		{"Acme", "500", "10", "2.5"},
	})

	records, err := FromReader(bytes.NewReader(wb))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.CompanyName != "Acme" {
		t.Errorf("companyName = %q, want Acme", rec.CompanyName)
	}
	if rec.TotalInvestment == nil || *rec.TotalInvestment != 500000 {
		t.Errorf("totalInvestment = %v, want 500000", rec.TotalInvestment)
	}
	if rec.EquityStake == nil || *rec.EquityStake != 10 {
		t.Errorf("equityStake = %v, want 10", rec.EquityStake)
	}
	if rec.MOIC == nil || *rec.MOIC != 2.5 {
		t.Errorf("moic = %v, want 2.5", rec.MOIC)
	}
	if !rec.IsExistingInvestment {
		t.Error("record should be an existing investment")
	}
	if rec.Analytics == nil {
		t.Fatal("analytics should be attached")
	}
}

func TestIngestionIsIdempotent(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{
		templateHeader,
		{"Acme", "500", "10", "2.5"},
		{"Globex", "1,200", "0.08", "1.1x"},
	})

	first, err := FromReader(bytes.NewReader(wb))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := FromReader(bytes.NewReader(wb))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("two ingestion runs over the same workbook should be identical")
	}
}

func TestBannerRowsBeforeHeader(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{
		{"Q3 Portfolio Review"},
		{},
		templateHeader,
		{"Acme", "500", "10", "2.5"},
	})

	records, err := FromReader(bytes.NewReader(wb))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(records) != 1 || records[0].CompanyName != "Acme" {
		t.Fatalf("header detection failed, records = %+v", records)
	}
}

func TestMainPageSheetPreferredOverFirst(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	// first sheet holds junk; the trailing-space variant holds the data
	writeRows(t, f, "Sheet1", [][]interface{}{{"notes"}, {"more notes"}})
	if _, err := f.NewSheet("Main Page "); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	writeRows(t, f, "Main Page ", [][]interface{}{
		templateHeader,
		{"Acme", "500", "10", "2.5"},
	})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	records, err := FromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(records) != 1 || records[0].CompanyName != "Acme" {
		t.Fatalf("should read from Main Page sheet, records = %+v", records)
	}
}

func TestSkipsEmptyAndNamelessRows(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{
		templateHeader,
		{"Acme", "500", "10", "2.5"},
		{},
		{"", "900", "12", "3.0"},
		{"Globex", "800", "5", "1.2"},
	})

	records, err := FromReader(bytes.NewReader(wb))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != 1 || records[1].ID != 2 {
		t.Errorf("ids = %d,%d, want sequential 1,2", records[0].ID, records[1].ID)
	}
	if records[1].CompanyName != "Globex" {
		t.Errorf("second record = %q, want Globex", records[1].CompanyName)
	}
}

func TestFailsWhenEssentialColumnsMissing(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{
		{"Alpha", "Beta", "Gamma"},
		{"1", "2", "3"},
	})

	_, err := FromReader(bytes.NewReader(wb))
	if err == nil {
		t.Fatal("expected essential-column error")
	}
	for _, want := range []string{"companyName", "totalInvestment", "equityStake"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err.Error(), want)
		}
	}
}

func TestFailsOnHeaderOnlyWorkbook(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{templateHeader})
	if _, err := FromReader(bytes.NewReader(wb)); err == nil {
		t.Fatal("expected error for workbook without data rows")
	}
}

func TestFailsWhenNoRowSurvives(t *testing.T) {
	wb := buildWorkbook(t, "Main Page", [][]interface{}{
		templateHeader,
		{"", "500", "10", "2.5"},
	})
	_, err := FromReader(bytes.NewReader(wb))
	if err == nil {
		t.Fatal("expected zero-valid-rows error")
	}
	if !strings.Contains(err.Error(), "no valid company rows") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFailsOnGarbageBytes(t *testing.T) {
	if _, err := FromReader(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatal("expected open error")
	}
}

func TestDetectHeaderRow(t *testing.T) {
	cases := []struct {
		name string
		rows [][]string
		want int
	}{
		{"clean sheet", [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, 0},
		{"banner first", [][]string{{"Portfolio"}, {"a", "b", "c"}, {"1", "2", "3"}}, 1},
		{"tie keeps earliest", [][]string{{"a", "b"}, {"c", "d"}}, 0},
		{"empty rows before header", [][]string{{}, {""}, {"a", "b", "c", "d"}}, 2},
	}
	for _, c := range cases {
		if got := DetectHeaderRow(c.rows); got != c.want {
			t.Errorf("%s: DetectHeaderRow = %d, want %d", c.name, got, c.want)
		}
	}
}
