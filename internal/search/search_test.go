package search

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

const chat = "01/01/2024, 10:00 - Asha: pizza tonight?\n" +
	"01/01/2024, 10:01 - Ravi: yes pizza, and cake 🎂\n" +
	"05/02/2024, 18:30 - Asha: more pizza please\n" +
	"05/02/2024, 18:31 - Ravi: नमस्ते दोस्त\n"

func loadDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	res, err := parse.ParseText(chat, parse.Options{Location: time.UTC})
	if err != nil {
		t.Fatal(err)
	}
	if err := index.IndexTranscript(db, "chat.txt", res); err != nil {
		t.Fatalf("IndexTranscript: %v", err)
	}
	return db
}

func TestSearchFTS(t *testing.T) {
	db := loadDB(t)

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"all", Options{Query: "pizza"}, 3},
		{"sender", Options{Query: "pizza", Sender: "Ravi"}, 1},
		{"since", Options{Query: "pizza", Since: "2024-02-01"}, 1},
		{"limit", Options{Query: "pizza", Limit: 2}, 2},
		{"operators are literal", Options{Query: "pizza OR"}, 0},
		{"no hit", Options{Query: "sushi"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Search(db, tt.opts)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d results, want %d: %+v", len(got), tt.want, got)
			}
		})
	}
}

func TestSearchLikeForDevanagari(t *testing.T) {
	db := loadDB(t)
	got, err := Search(db, Options{Query: "नमस्ते"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Sender != "Ravi" || got[0].LineNumber != 4 {
		t.Fatalf("results = %+v", got)
	}
	if got[0].Snippet != ">>>नमस्ते<<< दोस्त" {
		t.Errorf("snippet = %q", got[0].Snippet)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	if _, err := Search(loadDB(t), Options{Query: "  "}); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestMakeSnippet(t *testing.T) {
	tests := []struct {
		text, query string
		want        string
	}{
		{"hello world", "WORLD", "hello >>>world<<<"},
		{"a long line with the word pizza in the middle", "pizza", "... the word >>>pizza<<< in the mi..."},
		{"nothing here", "pizza", "nothing here"},
	}
	for _, tt := range tests {
		if got := makeSnippet(tt.text, tt.query, 10); got != tt.want {
			t.Errorf("makeSnippet(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.want)
		}
	}
}

func TestResultJSONKeys(t *testing.T) {
	b, err := json.Marshal(Result{TranscriptKey: "chat.txt", Ts: "2024-01-01 10:00:00", LineNumber: 3})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"transcriptKey":"chat.txt"`, `"ts":"2024-01-01 10:00:00"`, `"lineNumber":3`, `"snippet"`, `"rank"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("json %s missing %s", b, key)
		}
	}
}
