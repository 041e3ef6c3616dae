package util

import (
	"math"
	"strings"
	"testing"
)

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "alpha beta", "alpha beta", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		{"half overlap", "alpha beta", "alpha gamma", 1.0 / 3.0},
		{"case insensitive", "Alpha", "alpha", 1.0},
		{"both empty", "", "", 0.0},
		{"punctuation ignored", "alpha, beta!", "alpha beta", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JaccardSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JaccardSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// 对称性
			if rev := JaccardSimilarity(tt.b, tt.a); rev != got {
				t.Errorf("similarity is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestFindWordOccurrences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		phrase  string
		want    []Span
	}{
		{"single match", "read the Target note", "Target", []Span{{9, 15}}},
		{"case insensitive", "read the target note", "Target", []Span{{9, 15}}},
		{"no partial word match", "untargeted text", "target", nil},
		{"multiple matches", "Target here and Target there", "Target", []Span{{0, 6}, {16, 22}}},
		{"phrase with space", "see Concept A now", "Concept A", []Span{{4, 13}}},
		{"empty phrase", "anything", "", nil},
		// İ (U+0130) is 2 bytes but lowercases to 3; spans must still
		// index the original content
		{"wide lowercase before match", "İstanbul trip notes about Target today", "Target", []Span{{27, 33}}},
		{"cjk before match", "笔记 Target 笔记", "Target", []Span{{7, 13}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindWordOccurrences(tt.content, tt.phrase)
			if len(got) != len(tt.want) {
				t.Fatalf("FindWordOccurrences(%q, %q) = %v, want %v", tt.content, tt.phrase, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span[%d] = %v, want %v", i, got[i], tt.want[i])
				}
				if s := tt.content[got[i].Start:got[i].End]; !strings.EqualFold(s, tt.phrase) {
					t.Errorf("span[%d] slices %q, not a fold of %q", i, s, tt.phrase)
				}
			}
		})
	}
}

func TestFindWordOccurrencesKelvinSign(t *testing.T) {
	// K (U+212A) folds to k but is 3 bytes, so the matched window is
	// longer than the phrase itself
	content := "measured in Kelvin units"
	got := FindWordOccurrences(content, "kelvin")
	if len(got) != 1 {
		t.Fatalf("FindWordOccurrences = %v, want one span", got)
	}
	if s := content[got[0].Start:got[0].End]; !strings.EqualFold(s, "kelvin") {
		t.Errorf("span slices %q, not a fold of %q", s, "kelvin")
	}
}
