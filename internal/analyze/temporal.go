package analyze

import (
	"sort"
	"strconv"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

type MonthPoint struct {
	Year        int    `json:"year"`
	MonthNumber int    `json:"monthNumber"`
	MonthName   string `json:"month"`
	Time        string `json:"time"` // "March-2024"
	Messages    int    `json:"messages"`
}

// MonthlyTimeline counts messages per calendar month, oldest first.
func MonthlyTimeline(user string, records []parse.Record) []MonthPoint {
	type key struct{ year, month int }
	idx := make(map[key]int)
	var out []MonthPoint
	for _, r := range Scope(user, records) {
		k := key{r.Year, r.MonthNumber}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, MonthPoint{
				Year:        r.Year,
				MonthNumber: r.MonthNumber,
				MonthName:   r.MonthName,
				Time:        r.MonthName + "-" + strconv.Itoa(r.Year),
			})
		}
		out[i].Messages++
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNumber < out[j].MonthNumber
	})
	return out
}

type DayPoint struct {
	Date     string `json:"date"`
	Messages int    `json:"messages"`
}

// DailyTimeline counts messages per calendar day, oldest first.
func DailyTimeline(user string, records []parse.Record) []DayPoint {
	idx := make(map[string]int)
	var out []DayPoint
	for _, r := range Scope(user, records) {
		i, ok := idx[r.DateOnly]
		if !ok {
			i = len(out)
			idx[r.DateOnly] = i
			out = append(out, DayPoint{Date: r.DateOnly})
		}
		out[i].Messages++
	}
	// DateOnly is 2006-01-02 so lexical order is chronological
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// WeekActivityMap counts messages per weekday name. Unordered.
func WeekActivityMap(user string, records []parse.Record) map[string]int {
	out := make(map[string]int)
	for _, r := range Scope(user, records) {
		out[r.DayName]++
	}
	return out
}

// MonthActivityMap counts messages per month name across all years. Unordered.
func MonthActivityMap(user string, records []parse.Record) map[string]int {
	out := make(map[string]int)
	for _, r := range Scope(user, records) {
		out[r.MonthName]++
	}
	return out
}

// Heatmap is a dense weekday × hour-bucket count matrix. Cells without
// messages hold 0.
type Heatmap struct {
	Days    []string   `json:"days"`
	Buckets []string   `json:"buckets"`
	Counts  [7][24]int `json:"counts"`
}

// Get returns the count for a day name and bucket label, 0 if either is
// unknown.
func (h Heatmap) Get(day, bucket string) int {
	d, b := indexOf(h.Days, day), indexOf(h.Buckets, bucket)
	if d < 0 || b < 0 {
		return 0
	}
	return h.Counts[d][b]
}

// Max is the largest cell, used to scale shading.
func (h Heatmap) Max() int {
	m := 0
	for _, row := range h.Counts {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

// ActivityHeatmap pivots messages by weekday (Monday first) and hour bucket
// (0-1 through 23-0).
func ActivityHeatmap(user string, records []parse.Record) Heatmap {
	h := Heatmap{Days: parse.Weekdays(), Buckets: parse.HourBuckets()}
	for _, r := range Scope(user, records) {
		d := (int(r.Timestamp.Weekday()) + 6) % 7
		h.Counts[d][r.Timestamp.Hour()]++
	}
	return h
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
