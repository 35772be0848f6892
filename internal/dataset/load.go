package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"speciesmap/internal/areas"
	"speciesmap/internal/textutil"
)

// Column names.
const (
	ColCounty   = "county"
	ColFamily   = "family"
	ColGenus    = "genus"
	ColSpecies  = "species"
	ColSubgenus = "subgenus"
	ColYear     = "year"
)

// RequiredColumns are checked in this order when reporting missing columns.
var RequiredColumns = []string{ColCounty, ColFamily, ColGenus, ColSpecies}

var optionalColumns = []string{ColSubgenus, ColYear}

// Load reads path and keeps the records whose county matches an area in set.
func Load(path string, set *areas.Set) (*Dataset, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	ds, err := FromTable(table, set)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// FromTable converts a table into a working dataset.
func FromTable(table Table, set *areas.Set) (*Dataset, error) {
	records, optional, err := ParseRecords(table)
	if err != nil {
		return nil, err
	}

	summary := Summary{TotalRows: len(records), OptionalCols: optional}
	unmatched := make(map[string]int)
	matched := make([]Record, 0, len(records))
	var rejected []Record
	for _, rec := range records {
		if strings.TrimSpace(rec.County) == "" {
			summary.BlankCounty++
			continue
		}
		if !set.Contains(rec.County) {
			unmatched[rec.County]++
			rejected = append(rejected, rec)
			continue
		}
		matched = append(matched, rec)
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w (%d rows read)", ErrNoMatch, len(records))
	}

	summary.Matched = len(matched)
	summary.Unmatched = sortedUnmatched(unmatched)
	summary.Families, summary.Genera, summary.Species, summary.Counties = countDistinct(matched)
	return &Dataset{Records: matched, Rejected: rejected, Summary: summary}, nil
}

// ParseRecords maps table rows onto records using case-insensitive, trimmed
// header matching. It returns the optional columns that were present.
func ParseRecords(table Table) ([]Record, []string, error) {
	index := make(map[string]int, len(table.Header))
	for i, name := range table.Header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Missing: missing}
	}
	var present []string
	for _, col := range optionalColumns {
		if _, ok := index[col]; ok {
			present = append(present, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		if isEmptyRow(row) {
			continue
		}
		rec := Record{
			County:   strings.TrimSpace(cell(row, ColCounty)),
			Family:   textutil.CleanField(cell(row, ColFamily)),
			Genus:    textutil.CleanField(cell(row, ColGenus)),
			Species:  textutil.CleanField(cell(row, ColSpecies)),
			Subgenus: textutil.CleanField(cell(row, ColSubgenus)),
		}
		if textutil.IsBlank(rec.County) {
			rec.County = ""
		}
		rec.Year, rec.HasYear = ParseYear(cell(row, ColYear))
		records = append(records, rec)
	}
	return records, present, nil
}

// ParseYear accepts integer years and the float form spreadsheets emit ("2014.0").
func ParseYear(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if textutil.IsBlank(value) {
		return 0, false
	}
	if year, err := strconv.Atoi(value); err == nil {
		return year, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func sortedUnmatched(counts map[string]int) []UnmatchedCounty {
	if len(counts) == 0 {
		return nil
	}
	out := make([]UnmatchedCounty, 0, len(counts))
	for value, rows := range counts {
		out = append(out, UnmatchedCounty{Value: value, Rows: rows})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func countDistinct(records []Record) (families, genera, species, counties int) {
	fam := make(map[string]struct{})
	gen := make(map[string]struct{})
	spp := make(map[string]struct{})
	cty := make(map[string]struct{})
	for _, rec := range records {
		fam[rec.Family] = struct{}{}
		gen[rec.Genus] = struct{}{}
		spp[rec.Species] = struct{}{}
		cty[textutil.NormalizeName(rec.County)] = struct{}{}
	}
	return len(fam), len(gen), len(spp), len(cty)
}
