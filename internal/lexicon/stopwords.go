package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed stop_hinglish.txt
var defaultStopWords string

// StopWords is a read-only token set used to filter word frequencies.
type StopWords struct {
	set    map[string]struct{}
	raw    string
	legacy bool
}

// ParseStopWords splits a line-or-blob resource into whole lowercase tokens.
func ParseStopWords(raw string) *StopWords {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(raw) {
		set[strings.ToLower(tok)] = struct{}{}
	}
	return &StopWords{set: set, raw: raw}
}

func LoadStopWords(path string) (*StopWords, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stop words: %w", err)
	}
	return ParseStopWords(string(b)), nil
}

var loadDefault = sync.OnceValue(func() *StopWords {
	return ParseStopWords(defaultStopWords)
})

// DefaultStopWords returns the embedded Hinglish list. The value is shared
// and must not be modified.
func DefaultStopWords() *StopWords {
	return loadDefault()
}

// WithLegacyMatch returns a view that drops any token occurring anywhere in
// the raw resource text, so "an" is dropped when the file contains "and".
func (s *StopWords) WithLegacyMatch() *StopWords {
	return &StopWords{set: s.set, raw: s.raw, legacy: true}
}

func (s *StopWords) Legacy() bool {
	return s != nil && s.legacy
}

func (s *StopWords) Contains(token string) bool {
	if s == nil {
		return false
	}
	if s.legacy {
		return strings.Contains(s.raw, token)
	}
	_, ok := s.set[token]
	return ok
}

func (s *StopWords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.set)
}
