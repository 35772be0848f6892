package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema marks a table missing required columns.
	ErrSchema = errors.New("dataset schema invalid")
	// ErrNoMatch reports a table with no county matching any reference area.
	ErrNoMatch = errors.New("no records match a reference area")
	// ErrUnsupportedFormat reports an input file that is neither xlsx nor csv.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// SchemaError lists the required columns absent from a table header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
