package mapper

import (
	"errors"

	"speciesmap/internal/dataset"
	"speciesmap/internal/export"
	"speciesmap/internal/palette"
	"speciesmap/internal/taxonomy"
)

var (
	// ErrBusy reports that another generate or export holds the lock.
	ErrBusy = errors.New("another speciesmap run is in progress")
	// ErrNoSpecies reports a selection that matched no species.
	ErrNoSpecies = errors.New("no species match the selection")
	// ErrNoDataset reports a command that needs a loaded table.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrNoGallery reports a command that needs a generated gallery.
	ErrNoGallery = errors.New("no gallery generated")
)

// Hint maps an error to the next step an operator should take. It returns an
// empty string for errors without specific guidance.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "wait for the other run to finish, then retry"
	case errors.Is(err, ErrNoDataset):
		return "run `speciesmap load <file>` first"
	case errors.Is(err, ErrNoGallery):
		return "run `speciesmap generate --family <name> --genus <name>` first"
	case errors.Is(err, ErrNoSpecies):
		return "check the selection with `speciesmap taxa genera --family <name>`"
	case errors.Is(err, dataset.ErrSchema):
		return "the table needs County, Family, Genus and Species columns"
	case errors.Is(err, dataset.ErrNoMatch):
		return "county names must match the reference areas; see `speciesmap status`"
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		return "load an .xlsx or .csv file"
	case errors.Is(err, taxonomy.ErrSelection):
		return "pass both --family and --genus (\"All\" and \"Not Specified\" are accepted)"
	case errors.Is(err, palette.ErrInvalidColor):
		return "use a color name such as red or grey, or a hex value like #1f77b4"
	case errors.Is(err, export.ErrEmptyGallery):
		return "generate a gallery with at least one species"
	default:
		return ""
	}
}
