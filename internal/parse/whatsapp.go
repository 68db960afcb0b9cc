package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// ErrUnparsable is wrapped by ParseError when not a single line of a
// non-empty transcript carries a recognised message header.
var ErrUnparsable = errors.New("no line matches a known chat export layout")

type ParseError struct {
	Path  string
	Lines int
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s (%d lines): %v", e.Path, e.Lines, ErrUnparsable)
	}
	return fmt.Sprintf("parse transcript (%d lines): %v", e.Lines, ErrUnparsable)
}

func (e *ParseError) Unwrap() error { return ErrUnparsable }

type Options struct {
	Order    DateOrder      // "" or OrderAuto to detect
	Location *time.Location // nil = time.Local
	Logger   *zap.Logger
}

// headerPattern is one accepted "date, time" prefix. Patterns are tried in
// order and the first match wins for that line.
type headerPattern struct {
	name string
	re   *regexp.Regexp
}

const (
	datePart = `(\d{1,4})[/.\-](\d{1,2})[/.\-](\d{1,4})`
	timePart = `(\d{1,2}):(\d{2})(?::(\d{2}))?(?:[ \x{202f}\x{a0}]?([aApP])\.?\s?[mM]\.?)?`
)

var headerPatterns = []headerPattern{
	{name: "android", re: regexp.MustCompile(`^` + datePart + `,?\s` + timePart + `\s[-–]\s(.*)$`)},
	{name: "ios", re: regexp.MustCompile(`^\x{200e}?\[` + datePart + `,?\s` + timePart + `\]\s(.*)$`)},
}

// header is a matched but not yet validated message header.
type header struct {
	layout         string
	a, b, c        string // date parts in source order
	hour, min, sec string
	marker         string // "a", "p" or ""
	rest           string
}

func matchHeader(line string) (header, bool) {
	for _, p := range headerPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return header{
			layout: p.name,
			a:      m[1],
			b:      m[2],
			c:      m[3],
			hour:   m[4],
			min:    m[5],
			sec:    m[6],
			marker: strings.ToLower(m[7]),
			rest:   m[8],
		}, true
	}
	return header{}, false
}

func ParseFile(path string, opts Options) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	result, err := Parse(f, opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	result.Meta.FilePath = path
	result.Meta.Size = info.Size()
	result.Meta.Mtime = info.ModTime()
	return result, nil
}

func ParseText(text string, opts Options) (*ParseResult, error) {
	return Parse(strings.NewReader(text), opts)
}

// Parse reads an exported chat transcript and returns its messages in source
// order. Lines without a header are continuation lines of the open message.
// Empty input yields no records; any other input without a single header,
// including blank lines only, is a *ParseError.
func Parse(r io.Reader, opts Options) (*ParseResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	result := &ParseResult{
		Meta: TranscriptMeta{
			Lines:   len(lines),
			Layouts: map[string]int{},
		},
	}

	// first pass: find candidate headers and lock the date order
	headers := make([]*header, len(lines))
	for i, line := range lines {
		if h, ok := matchHeader(line); ok {
			headers[i] = &h
		}
	}
	order := opts.Order
	if order == "" || order == OrderAuto {
		order = detectOrder(headers)
	}
	result.Meta.Order = order

	// second pass: single open record, sealed on the next header or EOF
	var open *Record
	var body strings.Builder
	seal := func() {
		if open == nil {
			return
		}
		open.Body = body.String()
		result.Records = append(result.Records, *open)
		open = nil
		body.Reset()
	}

	for i, line := range lines {
		if h := headers[i]; h != nil {
			if ts, ok := h.timestamp(order, loc); ok {
				seal()
				sender, text, system := splitSender(h.rest)
				rec := newRecord(len(result.Records), i+1, ts, sender, "", system)
				open = &rec
				body.WriteString(text)
				result.Meta.Layouts[h.layout]++
				continue
			}
		}
		if open == nil {
			result.Meta.Preamble = append(result.Meta.Preamble, line)
			continue
		}
		body.WriteByte('\n')
		body.WriteString(line)
	}
	seal()

	if len(result.Records) == 0 {
		if len(lines) == 0 {
			return result, nil
		}
		return nil, &ParseError{Lines: len(lines)}
	}

	result.Meta.FirstAt = result.Records[0].Timestamp
	result.Meta.LastAt = result.Records[len(result.Records)-1].Timestamp

	logger.Debug("transcript parsed",
		zap.Int("lines", len(lines)),
		zap.Int("records", len(result.Records)),
		zap.String("order", string(order)),
		zap.Int("preamble", len(result.Meta.Preamble)))
	return result, nil
}

// splitSender separates "name: body". Without a ": " the line is a system
// event and the whole text is its body.
func splitSender(rest string) (sender, body string, system bool) {
	name, text, ok := strings.Cut(rest, ": ")
	if !ok || strings.TrimSpace(name) == "" {
		return GroupNotification, rest, true
	}
	return name, text, false
}

// detectOrder votes on every candidate header: a leading part above 12 can
// only be a day (DMY), a middle part above 12 only a day in MDY.
func detectOrder(headers []*header) DateOrder {
	var dmy, mdy, ymd int
	for _, h := range headers {
		if h == nil {
			continue
		}
		if len(h.a) == 4 {
			ymd++
			continue
		}
		a, _ := strconv.Atoi(h.a)
		b, _ := strconv.Atoi(h.b)
		switch {
		case a > 12 && b <= 12:
			dmy++
		case b > 12 && a <= 12:
			mdy++
		}
	}
	switch {
	case ymd > 0 && ymd >= dmy+mdy:
		return OrderYMD
	case mdy > dmy:
		return OrderMDY
	default:
		return OrderDMY
	}
}

func (h *header) timestamp(order DateOrder, loc *time.Location) (time.Time, bool) {
	var ys, ms, ds string
	switch {
	case len(h.a) == 4:
		ys, ms, ds = h.a, h.b, h.c
	case order == OrderMDY:
		ms, ds, ys = h.a, h.b, h.c
	default:
		ds, ms, ys = h.a, h.b, h.c
	}
	if len(ys) != 2 && len(ys) != 4 {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(ys)
	if len(ys) == 2 {
		year += 2000
	}
	month, _ := strconv.Atoi(ms)
	day, _ := strconv.Atoi(ds)
	hour, _ := strconv.Atoi(h.hour)
	minute, _ := strconv.Atoi(h.min)
	sec := 0
	if h.sec != "" {
		sec, _ = strconv.Atoi(h.sec)
	}

	switch h.marker {
	case "a", "p":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		hour %= 12
		if h.marker == "p" {
			hour += 12
		}
	default:
		if hour > 23 {
			return time.Time{}, false
		}
	}
	if month < 1 || month > 12 || day < 1 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	// time.Date normalises 31/02 into March; reject instead of guessing
	wall := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	if wall.Day() != day || int(wall.Month()) != month {
		return time.Time{}, false
	}
	return inZone(wall, loc), true
}

// inZone places the wall clock reading w in loc. A reading inside a
// spring-forward gap does not exist in loc; it keeps its written hour under
// the offset in force a day earlier.
func inZone(w time.Time, loc *time.Location) time.Time {
	ts := time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), 0, loc)
	if ts.Hour() == w.Hour() && ts.Minute() == w.Minute() && ts.Day() == w.Day() {
		return ts
	}
	pre := w.AddDate(0, 0, -1)
	name, offset := time.Date(pre.Year(), pre.Month(), pre.Day(), pre.Hour(), pre.Minute(), 0, 0, loc).Zone()
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), 0, time.FixedZone(name, offset))
}
