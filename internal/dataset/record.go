package dataset

// Record is one specimen row. Taxonomic fields are lower-cased and trimmed;
// an empty string means the cell was blank or a null marker. County keeps the
// trimmed cell text and is normalized wherever it is compared.
type Record struct {
	County   string `json:"county"`
	Family   string `json:"family"`
	Genus    string `json:"genus"`
	Species  string `json:"species"`
	Subgenus string `json:"subgenus,omitempty"`
	Year     int    `json:"year,omitempty"`
	HasYear  bool   `json:"has_year,omitempty"`
}

// Dataset holds the working set (records whose county matched an area) and
// the rejected records kept for unmatched-county diagnostics.
type Dataset struct {
	Source   string
	Records  []Record
	Rejected []Record
	Summary  Summary
}

// All returns matched records followed by rejected ones.
func (d *Dataset) All() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, 0, len(d.Records)+len(d.Rejected))
	out = append(out, d.Records...)
	return append(out, d.Rejected...)
}

// Summary describes a load for operators.
type Summary struct {
	TotalRows    int               `json:"total_rows"`
	Matched      int               `json:"matched"`
	BlankCounty  int               `json:"blank_county"`
	Families     int               `json:"families"`
	Genera       int               `json:"genera"`
	Species      int               `json:"species"`
	Counties     int               `json:"counties"`
	Unmatched    []UnmatchedCounty `json:"unmatched,omitempty"`
	OptionalCols []string          `json:"optional_columns,omitempty"`
}

// UnmatchedCounty is a raw county value with no reference area.
type UnmatchedCounty struct {
	Value string `json:"value"`
	Rows  int    `json:"rows"`
}
