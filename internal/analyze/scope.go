// Package analyze derives statistics, timelines, frequencies and sentiment
// from parsed chat records. Every function is a pure reduction over the
// records it is given; none of them mutate their input.
package analyze

import (
	"sort"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// Overall selects every record regardless of sender.
const Overall = "Overall"

// Scope returns the records sent by user, or all records for Overall.
// Matching is exact and case-sensitive.
func Scope(user string, records []parse.Record) []parse.Record {
	if user == Overall {
		return records
	}
	out := make([]parse.Record, 0)
	for _, r := range records {
		if r.Sender == user {
			out = append(out, r)
		}
	}
	return out
}

// Senders lists human senders sorted by name, the list a caller offers as
// filter choices after Overall.
func Senders(records []parse.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.System || seen[r.Sender] {
			continue
		}
		seen[r.Sender] = true
		out = append(out, r.Sender)
	}
	sort.Strings(out)
	return out
}

type KV struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// counter tallies keys and remembers first-seen order for tie breaking.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns keys by descending count, ties in first-seen order.
// limit <= 0 returns every key.
func (c *counter) ranked(limit int) []KV {
	out := make([]KV, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, KV{Key: k, Count: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
