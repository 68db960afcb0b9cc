package analyze

import (
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/lexicon"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// DefaultTopWords is the number of terms MostCommonWords returns by default.
const DefaultTopWords = 20

// MostCommonWords ranks lower-cased whitespace tokens, skipping system
// events, media placeholders and stop words. Ties keep first-seen order.
func MostCommonWords(user string, records []parse.Record, stop *lexicon.StopWords, limit int) []KV {
	if limit <= 0 {
		limit = DefaultTopWords
	}
	c := newCounter()
	for _, r := range Scope(user, records) {
		if r.System || r.IsMedia() {
			continue
		}
		for _, word := range strings.Fields(strings.ToLower(r.Body)) {
			if stop.Contains(word) {
				continue
			}
			c.add(word)
		}
	}
	return c.ranked(limit)
}
