package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/lexicon"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

const barWidth = 30

// shades maps a heatmap cell's share of the maximum to a glyph.
var shades = []string{" ", "░", "▒", "▓", "█"}

// newTable builds a bordered table; numeric columns are right aligned.
func newTable(headers []string, rows [][]string, numeric ...int) string {
	isNum := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		isNum[c] = true
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case isNum[col]:
				return styleNumber
			default:
				return styleCell
			}
		})
	return t.Render()
}

func section(title, body string) string {
	return styleTitle.Render(title) + "\n" + body + "\n"
}

func bar(n, peak int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	w := max(n*barWidth/peak, 1)
	return styleBar.Render(strings.Repeat("█", w))
}

func Stats(user string, s analyze.Stats) string {
	rows := [][]string{{
		strconv.Itoa(s.Messages),
		strconv.Itoa(s.Words),
		strconv.Itoa(s.Media),
		strconv.Itoa(s.Links),
	}}
	return section("Chat statistics: "+user,
		newTable([]string{"Messages", "Words", "Media shared", "Links shared"}, rows, 0, 1, 2, 3))
}

func Busy(b analyze.Busy) string {
	peak := 0
	if len(b.Top) > 0 {
		peak = b.Top[0].Count
	}
	top := make([][]string, 0, len(b.Top))
	for _, kv := range b.Top {
		top = append(top, []string{kv.Key, strconv.Itoa(kv.Count), bar(kv.Count, peak)})
	}
	shares := make([][]string, 0, len(b.Shares))
	for _, s := range b.Shares {
		shares = append(shares, []string{s.Name, strconv.Itoa(s.Count), fmt.Sprintf("%.2f", s.Percent)})
	}
	return section("Most busy users", newTable([]string{"User", "Messages", ""}, top, 1)) +
		section("Message share", newTable([]string{"Name", "Messages", "Percent"}, shares, 1, 2))
}

func Monthly(points []analyze.MonthPoint) string {
	peak := 0
	for _, p := range points {
		peak = max(peak, p.Messages)
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Time, strconv.Itoa(p.Messages), bar(p.Messages, peak)})
	}
	return section("Monthly timeline", newTable([]string{"Month", "Messages", ""}, rows, 1))
}

func Daily(points []analyze.DayPoint) string {
	peak := 0
	for _, p := range points {
		peak = max(peak, p.Messages)
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date, strconv.Itoa(p.Messages), bar(p.Messages, peak)})
	}
	return section("Daily timeline", newTable([]string{"Date", "Messages", ""}, rows, 1))
}

// ActivityMap lists counts in the given key order, omitting keys with no
// messages.
func ActivityMap(title string, counts map[string]int, order []string) string {
	peak := 0
	for _, n := range counts {
		peak = max(peak, n)
	}
	var rows [][]string
	for _, k := range order {
		n := counts[k]
		if n == 0 {
			continue
		}
		rows = append(rows, []string{k, strconv.Itoa(n), bar(n, peak)})
	}
	return section(title, newTable([]string{"", "Messages", ""}, rows, 1))
}

func Heatmap(h analyze.Heatmap) string {
	headers := make([]string, 0, len(h.Buckets)+1)
	headers = append(headers, "")
	for i := range h.Buckets {
		headers = append(headers, strconv.Itoa(i))
	}
	peak := h.Max()
	rows := make([][]string, 0, len(h.Days))
	for d, day := range h.Days {
		row := []string{day[:3]}
		for b := range h.Buckets {
			row = append(row, shade(h.Counts[d][b], peak))
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return styleNote
			}
			return styleBar
		})
	legend := styleNote.Render(fmt.Sprintf("columns are hour buckets (0 = 0-1 … 23 = 23-0); peak %d messages", peak))
	return section("Weekly activity heatmap", t.Render()+"\n"+legend)
}

func shade(n, peak int) string {
	if n <= 0 || peak <= 0 {
		return shades[0]
	}
	i := 1 + (n*(len(shades)-2))/peak
	return shades[min(i, len(shades)-1)]
}

// Ranked renders a frequency list such as top words or emoji.
func Ranked(title, keyHeader string, kvs []analyze.KV) string {
	if len(kvs) == 0 {
		return section(title, styleNote.Render("(none)"))
	}
	peak := kvs[0].Count
	rows := make([][]string, 0, len(kvs))
	for i, kv := range kvs {
		rows = append(rows, []string{strconv.Itoa(i + 1), kv.Key, strconv.Itoa(kv.Count), bar(kv.Count, peak)})
	}
	return section(title, newTable([]string{"#", keyHeader, "Count", ""}, rows, 0, 2))
}

// Moods shows every mood counter, zero when the emoji never occurred, plus
// the sentiment split and dominant emotion.
func Moods(counts map[lexicon.Mood]int, s analyze.Sentiment, dominant analyze.Emotion) string {
	rows := make([][]string, 0, len(lexicon.Moods()))
	for _, m := range lexicon.Moods() {
		rows = append(rows, []string{lexicon.Icon(m) + " " + string(m), strconv.Itoa(counts[m])})
	}
	sentiment := [][]string{
		{"Positive", strconv.Itoa(s.Positive)},
		{"Neutral", strconv.Itoa(s.Neutral)},
		{"Negative", strconv.Itoa(s.Negative)},
	}
	return section("Mood emoji counters", newTable([]string{"Mood", "Count"}, rows, 1)) +
		section("Sentiment", newTable([]string{"Class", "Messages"}, sentiment, 1)) +
		styleTitle.Render("Dominant emotion: ") + string(dominant) + "\n"
}

// Users lists the filter choices, Overall first.
func Users(senders []string) string {
	rows := [][]string{{analyze.Overall}}
	for _, s := range senders {
		rows = append(rows, []string{s})
	}
	return newTable([]string{"User"}, rows) + "\n"
}

// Diagnostics summarises how a transcript was parsed.
func Diagnostics(meta parse.TranscriptMeta, records int) string {
	layouts := make([]string, 0, len(meta.Layouts))
	for name, n := range meta.Layouts {
		layouts = append(layouts, fmt.Sprintf("%s=%d", name, n))
	}
	sort.Strings(layouts)
	rows := [][]string{
		{"file", meta.FilePath},
		{"lines", strconv.Itoa(meta.Lines)},
		{"messages", strconv.Itoa(records)},
		{"date order", string(meta.Order)},
		{"layouts", strings.Join(layouts, " ")},
		{"preamble lines", strconv.Itoa(len(meta.Preamble))},
	}
	if records > 0 {
		rows = append(rows,
			[]string{"first message", meta.FirstAt.Format("2006-01-02 15:04")},
			[]string{"last message", meta.LastAt.Format("2006-01-02 15:04")})
	}
	return newTable([]string{"", ""}, rows) + "\n"
}

func Advice(user, text string) string {
	return section("Mood advice for "+user, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(80).
		Render(text))
}
