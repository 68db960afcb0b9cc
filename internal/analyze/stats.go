package analyze

import (
	"math"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"mvdan.cc/xurls/v2"
)

// relaxed also finds bare domains such as "example.com/path".
var linkPattern = xurls.Relaxed()

type Stats struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
}

// FetchStats counts messages, words, media placeholders and links in scope.
// Media placeholders are not text and contribute no words.
func FetchStats(user string, records []parse.Record) Stats {
	scoped := Scope(user, records)
	s := Stats{Messages: len(scoped)}
	for _, r := range scoped {
		if r.IsMedia() {
			s.Media++
			continue
		}
		s.Words += len(strings.Fields(r.Body))
		s.Links += len(linkPattern.FindAllString(r.Body, -1))
	}
	return s
}

type SenderShare struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Busy struct {
	Top    []KV          `json:"top"`
	Shares []SenderShare `json:"shares"`
}

const busyTop = 5

// MostBusyUsers returns the five most active senders and every sender's
// share of all messages, rounded to two decimals. Rounding error is left
// as is.
func MostBusyUsers(records []parse.Record) Busy {
	c := newCounter()
	for _, r := range records {
		c.add(r.Sender)
	}
	all := c.ranked(0)

	busy := Busy{
		Top:    make([]KV, 0, busyTop),
		Shares: make([]SenderShare, 0, len(all)),
	}
	for i, kv := range all {
		if i < busyTop {
			busy.Top = append(busy.Top, kv)
		}
		busy.Shares = append(busy.Shares, SenderShare{
			Name:    kv.Key,
			Count:   kv.Count,
			Percent: percent(kv.Count, len(records)),
		})
	}
	return busy
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
