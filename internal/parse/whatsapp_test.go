package parse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"
)

func parseUTC(t *testing.T, text string, order DateOrder) *ParseResult {
	t.Helper()
	res, err := ParseText(text, Options{Order: order, Location: time.UTC})
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	return res
}

func TestParseLayouts(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   time.Time
		sender string
		body   string
	}{
		{
			name:   "android 24h",
			text:   "25/12/2023, 18:05 - Ravi: Merry xmas",
			want:   time.Date(2023, 12, 25, 18, 5, 0, 0, time.UTC),
			sender: "Ravi",
			body:   "Merry xmas",
		},
		{
			name:   "android 12h narrow space",
			text:   "25/12/23, 6:05\u202fpm - Ravi: hi",
			want:   time.Date(2023, 12, 25, 18, 5, 0, 0, time.UTC),
			sender: "Ravi",
			body:   "hi",
		},
		{
			name:   "12am is midnight",
			text:   "25/12/2023, 12:10 am - Ravi: late",
			want:   time.Date(2023, 12, 25, 0, 10, 0, 0, time.UTC),
			sender: "Ravi",
			body:   "late",
		},
		{
			name:   "dotted marker",
			text:   "25/12/2023, 9:00 a.m. - Ravi: early",
			want:   time.Date(2023, 12, 25, 9, 0, 0, 0, time.UTC),
			sender: "Ravi",
			body:   "early",
		},
		{
			name:   "ios brackets with seconds",
			text:   "\u200e[25.12.23, 18:05:09] Ravi: ios",
			want:   time.Date(2023, 12, 25, 18, 5, 9, 0, time.UTC),
			sender: "Ravi",
			body:   "ios",
		},
		{
			name:   "year first",
			text:   "2023-12-25, 18:05 - Ravi: iso",
			want:   time.Date(2023, 12, 25, 18, 5, 0, 0, time.UTC),
			sender: "Ravi",
			body:   "iso",
		},
		{
			name:   "body keeps later separators",
			text:   "25/12/2023, 18:05 - Ravi: note: bring cake",
			want:   time.Date(2023, 12, 25, 18, 5, 0, 0, time.UTC),
			sender: "Ravi",
			body:   "note: bring cake",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseUTC(t, tt.text, OrderAuto)
			if len(res.Records) != 1 {
				t.Fatalf("got %d records, want 1", len(res.Records))
			}
			r := res.Records[0]
			if !r.Timestamp.Equal(tt.want) {
				t.Errorf("timestamp = %v, want %v", r.Timestamp, tt.want)
			}
			if r.Sender != tt.sender || r.Body != tt.body {
				t.Errorf("sender/body = %q/%q, want %q/%q", r.Sender, r.Body, tt.sender, tt.body)
			}
		})
	}
}

func TestParseDerivedFields(t *testing.T) {
	res := parseUTC(t, "03/03/2025, 23:40 - Asha: night\n04/03/2025, 00:05 - Asha: still up", OrderAuto)
	if len(res.Records) != 2 {
		t.Fatalf("got %d records", len(res.Records))
	}
	r := res.Records[0]
	if r.Year != 2025 || r.MonthNumber != 3 || r.MonthName != "March" ||
		r.DayName != "Monday" || r.DateOnly != "2025-03-03" || r.HourBucket != "23-0" {
		t.Errorf("derived fields = %+v", r)
	}
	if got := res.Records[1].HourBucket; got != "0-1" {
		t.Errorf("midnight bucket = %q, want 0-1", got)
	}
	if res.Records[1].Index != 1 || res.Records[1].LineNumber != 2 {
		t.Errorf("index/line = %d/%d", res.Records[1].Index, res.Records[1].LineNumber)
	}
}

func TestParseSpringForwardGap(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	text := "10/03/2024, 01:59 - alice: late\n" +
		"10/03/2024, 02:30 - alice: hi\n" +
		"10/03/2024, 03:40 - bob: morning\n"
	res, err := ParseText(text, Options{Location: ny})
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records", len(res.Records))
	}

	gap := res.Records[1]
	if gap.HourBucket != "2-3" || gap.Timestamp.Hour() != 2 || gap.Timestamp.Minute() != 30 {
		t.Errorf("gap record = %s bucket %q, want 02:30 bucket 2-3", gap.Timestamp, gap.HourBucket)
	}
	if gap.DateOnly != "2024-03-10" || gap.DayName != "Sunday" {
		t.Errorf("gap date = %s %s", gap.DateOnly, gap.DayName)
	}
	if _, off := gap.Timestamp.Zone(); off != -5*3600 {
		t.Errorf("gap offset = %d, want EST", off)
	}
	for i := 1; i < len(res.Records); i++ {
		if !res.Records[i].Timestamp.After(res.Records[i-1].Timestamp) {
			t.Errorf("record %d not after record %d", i, i-1)
		}
	}
	if got := res.Records[2].HourBucket; got != "3-4" {
		t.Errorf("after gap bucket = %q, want 3-4", got)
	}
}

func TestParseDateOrder(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		order DateOrder
		want  DateOrder
		month time.Month
	}{
		{"day proves dmy", "05/04/2024, 10:00 - a: x\n20/04/2024, 10:00 - a: y", OrderAuto, OrderDMY, time.April},
		{"day proves mdy", "05/04/2024, 10:00 - a: x\n04/20/2024, 10:00 - a: y", OrderAuto, OrderMDY, time.May},
		{"no evidence defaults dmy", "05/04/2024, 10:00 - a: x", OrderAuto, OrderDMY, time.April},
		{"forced mdy", "05/04/2024, 10:00 - a: x", OrderMDY, OrderMDY, time.May},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseUTC(t, tt.text, tt.order)
			if res.Meta.Order != tt.want {
				t.Errorf("order = %q, want %q", res.Meta.Order, tt.want)
			}
			if got := res.Records[0].Timestamp.Month(); got != tt.month {
				t.Errorf("first month = %v, want %v", got, tt.month)
			}
		})
	}
}

func TestParseContinuationAndSystem(t *testing.T) {
	text := strings.Join([]string{
		"Messages and calls are end-to-end encrypted.",
		"01/06/2024, 09:00 - Priya created group \"Trip\"",
		"01/06/2024, 09:01 - Priya: packing list",
		"- socks",
		"",
		"31/02/2024, 09:02 - not a real date",
		"01/06/2024, 09:03 - Dev: <Media omitted>",
	}, "\n")
	res := parseUTC(t, text, OrderAuto)

	if got := res.Meta.Preamble; len(got) != 1 || !strings.HasPrefix(got[0], "Messages and calls") {
		t.Errorf("preamble = %q", got)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(res.Records))
	}

	sys := res.Records[0]
	if !sys.System || sys.Sender != GroupNotification || sys.Body != "Priya created group \"Trip\"" {
		t.Errorf("system record = %+v", sys)
	}

	want := "packing list\n- socks\n\n31/02/2024, 09:02 - not a real date"
	if got := res.Records[1].Body; got != want {
		t.Errorf("continuation body = %q, want %q", got, want)
	}

	media := res.Records[2]
	if media.Body != MediaOmitted || !media.IsMedia() {
		t.Errorf("media body = %q", media.Body)
	}

	for i := 1; i < len(res.Records); i++ {
		if res.Records[i].Index != i || res.Records[i].LineNumber <= res.Records[i-1].LineNumber {
			t.Errorf("record %d out of order", i)
		}
	}
	if res.Meta.Layouts["android"] != 3 {
		t.Errorf("layouts = %v", res.Meta.Layouts)
	}
}

func TestParseEmptyAndUnparsable(t *testing.T) {
	res, err := ParseText("", Options{})
	if err != nil || len(res.Records) != 0 {
		t.Errorf("ParseText(\"\") = %v, %v", res, err)
	}

	for _, text := range []string{"\n", "\n\n  \n"} {
		if _, err := ParseText(text, Options{}); !errors.Is(err, ErrUnparsable) {
			t.Errorf("ParseText(%q) err = %v, want ErrUnparsable", text, err)
		}
	}

	_, err = ParseText("hello\nthis is not an export\n", Options{})
	if !errors.Is(err, ErrUnparsable) {
		t.Fatalf("err = %v, want ErrUnparsable", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Lines != 2 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte("\ufeff01/06/2024, 09:01 - Priya: hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ParseFile(path, Options{Location: time.UTC})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if res.Meta.FilePath != path || res.Meta.Size == 0 || len(res.Records) != 1 {
		t.Errorf("meta = %+v, records = %d", res.Meta, len(res.Records))
	}

	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("just notes"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ParseFile(bad, Options{})
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != bad {
		t.Errorf("err = %v, want ParseError for %s", err, bad)
	}
}

func TestHourBuckets(t *testing.T) {
	b := HourBuckets()
	if len(b) != 24 || b[0] != "0-1" || b[13] != "13-14" || b[23] != "23-0" {
		t.Errorf("buckets = %v", b)
	}
	if w := Weekdays(); len(w) != 7 || w[0] != "Monday" || w[6] != "Sunday" {
		t.Errorf("weekdays = %v", w)
	}
}
