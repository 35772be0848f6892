package textutil

import "testing"

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
	}{
		{"both nil", nil, nil},
		{"a nil", nil, NewFingerprint("missoula")},
		{"b nil", NewFingerprint("missoula"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("CosineSimilarity() = %v, want 0", got)
			}
		})
	}
}

func TestCosineSimilarityIgnoresCaseAndAmpersand(t *testing.T) {
	a := NewFingerprint("Lewis & Clark")
	b := NewFingerprint("lewis and clark")
	if got := CosineSimilarity(a, b); got < 0.999 {
		t.Fatalf("CosineSimilarity = %v, want 1", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("deer lodge")
	b := NewFingerprint("deerlodge")
	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Fatal("CosineSimilarity not symmetric")
	}
}

func TestTrigrams(t *testing.T) {
	got := Trigrams("Ab")
	want := []string{" ab", "ab "}
	if len(got) != len(want) {
		t.Fatalf("Trigrams = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Trigrams = %q, want %q", got, want)
		}
	}
	if Trigrams("   ") != nil {
		t.Fatal("expected nil trigrams for blank input")
	}
}

func TestSuggestName(t *testing.T) {
	candidates := []string{"missoula", "gallatin", "flathead", "lewis and clark", "deer lodge"}
	tests := []struct {
		in   string
		want string
	}{
		{"Misoula", "missoula"},
		{"Galatin", "gallatin"},
		{"Deerlodge", "deer lodge"},
		{"Lewis & Clarke", "lewis and clark"},
		{"zzzz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SuggestName(tt.in, candidates); got != tt.want {
			t.Errorf("SuggestName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
