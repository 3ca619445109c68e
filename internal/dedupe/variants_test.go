package dedupe

import (
	"testing"

	"bindery/internal/library"
)

func TestStripVariantSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Book (1).pdf", "Book.pdf"},
		{"Book (12).pdf", "Book.pdf"},
		{"Book.pdf", "Book.pdf"},
		{"Book (draft).pdf", "Book (draft).pdf"},
		{"Book (1)", "Book"},
		{"Book(1).pdf", "Book(1).pdf"},
	}
	for _, tt := range tests {
		if got := stripVariantSuffix(tt.in); got != tt.want {
			t.Errorf("stripVariantSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameVariantGroups(t *testing.T) {
	records := []*library.FileRecord{
		{NewName: "Guide.pdf"},
		{NewName: "Guide (1).pdf"},
		{NewName: "Other.pdf"},
		{NewName: ""},
	}
	groups := NameVariantGroups(records)
	if len(groups) != 1 {
		t.Fatalf("expected 1 variant group, got %d", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][0] != 0 || groups[0][1] != 1 {
		t.Fatalf("unexpected group %v", groups[0])
	}
}
