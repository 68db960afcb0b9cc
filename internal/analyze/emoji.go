package analyze

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// emojis walks s by grapheme cluster so ZWJ sequences, skin tones and
// variation selectors stay attached to their base emoji.
func emojis(s string, fn func(cluster string)) {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		if gomoji.ContainsEmoji(cluster) {
			fn(cluster)
		}
	}
}

// EmojiFrequency ranks every distinct emoji in scope by use. Variation
// selectors are dropped from the key, so "❤" and "❤️" count together. The
// slice is empty when no emoji occur.
func EmojiFrequency(user string, records []parse.Record) []KV {
	c := newCounter()
	for _, r := range Scope(user, records) {
		emojis(r.Body, func(cluster string) {
			c.add(strings.ReplaceAll(cluster, "\ufe0f", ""))
		})
	}
	return c.ranked(0)
}
