package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStopWordsExactMembership(t *testing.T) {
	t.Parallel()

	sw := ParseStopWords("hai\nKya  the\n\nand")

	tests := []struct {
		token string
		want  bool
	}{
		{"hai", true},
		{"kya", true},
		{"the", true},
		{"an", false},
		{"ha", false},
		{"hello", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := sw.Contains(tt.token); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
	if sw.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sw.Len())
	}
}

func TestStopWordsLegacyMatch(t *testing.T) {
	t.Parallel()

	sw := ParseStopWords("hai\nand").WithLegacyMatch()
	if !sw.Legacy() {
		t.Fatal("expected legacy view")
	}
	for _, tok := range []string{"an", "ha", "d\nha"} {
		if !sw.Contains(tok) {
			t.Errorf("legacy Contains(%q) = false, want true", tok)
		}
	}
	if sw.Contains("hello") {
		t.Error("legacy Contains(hello) = true, want false")
	}
}

func TestLoadStopWords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, []byte("yaar\nbhai\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sw, err := LoadStopWords(path)
	if err != nil {
		t.Fatalf("LoadStopWords: %v", err)
	}
	if !sw.Contains("bhai") || sw.Contains("dost") {
		t.Errorf("unexpected membership for loaded list")
	}

	if _, err := LoadStopWords(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultStopWordsShared(t *testing.T) {
	t.Parallel()

	a, b := DefaultStopWords(), DefaultStopWords()
	if a != b {
		t.Error("default stop words loaded twice")
	}
	if !a.Contains("hai") {
		t.Error("embedded list should contain hai")
	}
}

func TestMoodLookupIgnoresVariationSelector(t *testing.T) {
	t.Parallel()

	moods := DefaultMoods()
	for _, cluster := range []string{"❤️", "❤", "💖"} {
		mood, ok := moods.Lookup(cluster)
		if !ok || mood != Love {
			t.Errorf("Lookup(%q) = %q, %v; want Love", cluster, mood, ok)
		}
	}
	if _, ok := moods.Lookup("😂"); ok {
		t.Error("😂 should not map to a mood")
	}
}

func TestEveryMoodHasIcon(t *testing.T) {
	t.Parallel()

	for _, m := range Moods() {
		if Icon(m) == "" {
			t.Errorf("mood %s has no icon", m)
		}
	}
}
