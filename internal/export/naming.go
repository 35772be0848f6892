package export

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"speciesmap/internal/textutil"
)

// DefaultTimestampLayout renders minutes, e.g. 20260419_1530.
const DefaultTimestampLayout = "20060102_1504"

// Naming builds export file names: <prefix>-<genus>-<timestamp>_page<N>.tiff
// for pages and <prefix>-<genus>-<timestamp>.zip for archives.
type Naming struct {
	Prefix string
	Genus  string
	Stamp  string
}

// NewNaming fixes the timestamp for one export. An empty prefix repeats the
// genus.
func NewNaming(prefix, genus string, at time.Time, layout string) Naming {
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	genus = cleanPart(genus)
	prefix = cleanPart(prefix)
	if prefix == "" {
		prefix = genus
	}
	return Naming{Prefix: prefix, Genus: genus, Stamp: at.Format(layout)}
}

func cleanPart(value string) string {
	return textutil.SanitizeFileName(value)
}

// Base is the shared stem without page number or extension.
func (n Naming) Base() string {
	return fmt.Sprintf("%s-%s-%s", n.Prefix, n.Genus, n.Stamp)
}

// PageFile names page number (1-based).
func (n Naming) PageFile(number int) string {
	return fmt.Sprintf("%s_page%d.tiff", n.Base(), number)
}

// ArchiveFile names the archive.
func (n Naming) ArchiveFile() string {
	return n.Base() + ".zip"
}

var pageNumberPattern = regexp.MustCompile(`_page(\d+)(?:-\d+)?\.tiff?$`)

// ParsePageNumber reads the 1-based page number back from a page file name,
// tolerating a collision suffix such as "_page3-2.tiff".
func ParsePageNumber(name string) (int, error) {
	m := pageNumberPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("no page number in %q", name)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number in %q", name)
	}
	return n, nil
}
