package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Algebra: Chapter 0", "Algebra- Chapter 0"},
		{"What? A <Title>", "What A Title"},
		{"a/b\\c", "a-b-c"},
		{"  spaced  ", "spaced"},
		{"tabs\tand\nnewlines", "tabsandnewlines"},
		{"Title...", "Title"},
		{"double  space", "double space"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldMarks(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Birkhäuser", "Birkhauser"},
		{"Éléments de Géométrie", "Elements de Geometrie"},
		{"苏阳", "苏阳"},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		if got := FoldMarks(tt.in); got != tt.want {
			t.Errorf("FoldMarks(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
