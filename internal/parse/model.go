package parse

import (
	"strconv"
	"strings"
	"time"
)

// GroupNotification is the sender assigned to system events (joins, leaves,
// subject changes) that carry no "name: " prefix.
const GroupNotification = "group notification"

// MediaOmitted is the exact body WhatsApp writes in place of an attachment
// when a chat is exported without media.
const MediaOmitted = "<Media omitted>"

type DateOrder string

const (
	OrderAuto DateOrder = "auto"
	OrderDMY  DateOrder = "dmy"
	OrderMDY  DateOrder = "mdy"
	OrderYMD  DateOrder = "ymd"
)

type TranscriptMeta struct {
	FilePath string
	Size     int64
	Mtime    time.Time
	Order    DateOrder // order the transcript was locked to
	Lines    int
	FirstAt  time.Time
	LastAt   time.Time
	Preamble []string // lines seen before the first message header
	Layouts  map[string]int
}

type Record struct {
	Index      int
	LineNumber int // 1-based line of the header in the source text
	Timestamp  time.Time
	Sender     string
	Body       string
	System     bool

	Year        int
	MonthNumber int
	MonthName   string
	DayName     string
	DateOnly    string // 2006-01-02
	HourBucket  string // "13-14", "23-0", "0-1"
}

// IsMedia reports whether the body is the media placeholder. Only trailing
// line breaks are tolerated; anything else is text content.
func (r Record) IsMedia() bool {
	return strings.TrimRight(r.Body, "\r\n") == MediaOmitted
}

type ParseResult struct {
	Meta    TranscriptMeta
	Records []Record
}

// HourBucket labels the one-hour period starting at h. The last hour wraps to
// "23-0" rather than "23-24".
func HourBucket(h int) string {
	next := (h + 1) % 24
	return strconv.Itoa(h) + "-" + strconv.Itoa(next)
}

// HourBuckets returns all 24 bucket labels in clock order.
func HourBuckets() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = HourBucket(h)
	}
	return out
}

// Weekdays returns day names Monday first, the row order used by heatmaps.
func Weekdays() []string {
	return []string{
		time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
		time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
		time.Sunday.String(),
	}
}

// MonthNames returns January..December.
func MonthNames() []string {
	out := make([]string, 12)
	for i := range out {
		out[i] = time.Month(i + 1).String()
	}
	return out
}

func newRecord(idx, line int, ts time.Time, sender, body string, system bool) Record {
	return Record{
		Index:       idx,
		LineNumber:  line,
		Timestamp:   ts,
		Sender:      sender,
		Body:        body,
		System:      system,
		Year:        ts.Year(),
		MonthNumber: int(ts.Month()),
		MonthName:   ts.Month().String(),
		DayName:     ts.Weekday().String(),
		DateOnly:    ts.Format("2006-01-02"),
		HourBucket:  HourBucket(ts.Hour()),
	}
}
