package filter

import (
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase",
			input:    "FREE MONEY",
			expected: "free money",
		},
		{
			name:     "leetspeak numbers",
			input:    "fr33 m0ney",
			expected: "free money",
		},
		{
			name:     "at sign to a",
			input:    "@ct now",
			expected: "act now",
		},
		{
			name:     "dollar sign to s",
			input:    "ea$y money",
			expected: "easy money",
		},
		{
			name:     "unicode diacritics",
			input:    "café résumé",
			expected: "cafe resume",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeText(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeText(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAhoCorasick_Search(t *testing.T) {
	ac := NewAhoCorasick()
	ac.Build([]Pattern{
		{Term: "free money", Category: "financial"},
		{Term: "act now", Category: "urgency"},
		{Term: "claim your prize", Category: "prize"},
	})

	matches := ac.Search("Get FREE MONEY today, act now!")
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(matches), matches)
	}
	if matches[0].Term != "free money" {
		t.Errorf("Expected first match 'free money', got %q", matches[0].Term)
	}
	if matches[1].Term != "act now" {
		t.Errorf("Expected second match 'act now', got %q", matches[1].Term)
	}
	if matches[1].Category != "urgency" {
		t.Errorf("Expected category 'urgency', got %q", matches[1].Category)
	}
}

func TestAhoCorasick_SearchObfuscated(t *testing.T) {
	ac := NewAhoCorasick()
	ac.Build([]Pattern{
		{Term: "free money", Category: "financial"},
	})

	// Leetspeak in the scanned text must still match
	matches := ac.Search("fr33 m0ney guaranteed")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match on obfuscated text, got %d", len(matches))
	}
}

func TestAhoCorasick_OverlappingPatterns(t *testing.T) {
	ac := NewAhoCorasick()
	ac.Build([]Pattern{
		{Term: "money", Category: "financial"},
		{Term: "easy money", Category: "financial"},
	})

	matches := ac.Search("this is easy money")
	if len(matches) != 2 {
		t.Fatalf("Expected 2 overlapping matches, got %d", len(matches))
	}
}

func TestAhoCorasick_HasMatch(t *testing.T) {
	ac := NewAhoCorasick()
	ac.Build([]Pattern{
		{Term: "guaranteed income", Category: "financial"},
	})

	if !ac.HasMatch("get GUARANTEED INCOME fast") {
		t.Error("Expected match")
	}
	if ac.HasMatch("completely ordinary text") {
		t.Error("Expected no match")
	}
}

func TestAhoCorasick_RebuildReplacesPatterns(t *testing.T) {
	ac := NewAhoCorasick()
	ac.Build([]Pattern{{Term: "bitcoin", Category: "financial"}})
	if !ac.HasMatch("buy bitcoin") {
		t.Fatal("Expected match before rebuild")
	}

	ac.Build([]Pattern{{Term: "urgent", Category: "urgency"}})
	if ac.HasMatch("buy bitcoin") {
		t.Error("Old pattern should be gone after rebuild")
	}
	if !ac.HasMatch("urgent offer") {
		t.Error("New pattern should match after rebuild")
	}
}
