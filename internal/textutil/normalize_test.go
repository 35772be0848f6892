package textutil

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" Lewis & Clark ", "lewis and clark"},
		{"lewis and clark", "lewis and clark"},
		{"MISSOULA", "missoula"},
		{"\tGallatin\n", "gallatin"},
		{"", ""},
		{"Big  Horn", "big  horn"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNameEquivalence(t *testing.T) {
	if NormalizeName(" Lewis & Clark ") != NormalizeName("lewis and clark") {
		t.Fatal("expected ampersand and case variants to normalize identically")
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{" Lewis & Clark ", "Deer Lodge", "&&", "  ", "Golden Valley & Co"}
	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsBlank(t *testing.T) {
	for _, value := range []string{"", "  ", "nan", "NaN", "null", "None", " nan "} {
		if !IsBlank(value) {
			t.Errorf("IsBlank(%q) = false, want true", value)
		}
	}
	for _, value := range []string{"apidae", "nana", "0"} {
		if IsBlank(value) {
			t.Errorf("IsBlank(%q) = true, want false", value)
		}
	}
}

func TestCleanField(t *testing.T) {
	if got := CleanField("  Apidae "); got != "apidae" {
		t.Fatalf("CleanField = %q, want apidae", got)
	}
	if got := CleanField("NaN"); got != "" {
		t.Fatalf("CleanField(NaN) = %q, want empty", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("megachile"); got != "Megachile" {
		t.Fatalf("TitleCase = %q", got)
	}
	if got := TitleCase("lewis and clark"); got != "Lewis And Clark" {
		t.Fatalf("TitleCase = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if Plural(1, "county", "counties") != "county" {
		t.Fatal("expected singular for 1")
	}
	if Plural(0, "county", "counties") != "counties" {
		t.Fatal("expected plural for 0")
	}
	if Plural(3, "specimen", "specimens") != "specimens" {
		t.Fatal("expected plural for 3")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		" Mega/chile: ":      "Mega-chile-",
		"Lewis and  Clark":   "Lewis_and_Clark",
		`Osmia "sp?" <new>`:  "Osmia_sp_new",
		"   ":                "",
		"Apis_mellifera-2.0": "Apis_mellifera-2.0",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
