package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SpecimenHeader is the column layout used by fixture tables.
var SpecimenHeader = []string{"County", "Family", "Genus", "Subgenus", "Species", "Year"}

// MegachileRows is the three-record scenario: two relativa and one perihirta.
var MegachileRows = [][]string{
	{"Missoula", "Apidae", "Megachile", "", "relativa", "2010"},
	{"Gallatin", "Apidae", "Megachile", "", "relativa", "2018"},
	{"Flathead", "Apidae", "Megachile", "", "perihirta", ""},
}

// WriteCSV writes header and rows as a csv file.
func WriteCSV(t testing.TB, path string, header []string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
}

// WriteXLSX writes header and rows to the first sheet of a workbook.
func WriteXLSX(t testing.TB, path string, header []string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	all := append([][]string{header}, rows...)
	for r, row := range all {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("set row %d: %v", r+1, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}
