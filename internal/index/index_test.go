package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

const chat = "01/01/2024, 10:00 - Asha: one\n" +
	"01/01/2024, 10:01 - Ravi: two\n" +
	"01/01/2024, 10:02 - Asha joined\n" +
	"01/01/2024, 10:03 - Asha: four\n" +
	"01/01/2024, 10:04 - Ravi: five\n"

func openLoaded(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	res, err := parse.ParseText(chat, parse.Options{Location: time.UTC})
	if err != nil {
		t.Fatal(err)
	}
	if err := IndexTranscript(db, "chat", res); err != nil {
		t.Fatalf("IndexTranscript: %v", err)
	}
	return db
}

func TestIndexTranscriptReplaces(t *testing.T) {
	db := openLoaded(t)
	res, _ := parse.ParseText(chat, parse.Options{Location: time.UTC})
	if err := IndexTranscript(db, "chat", res); err != nil {
		t.Fatal(err)
	}
	if n, _ := db.MessageCount(); n != 5 {
		t.Errorf("MessageCount = %d, want 5", n)
	}
	if n, _ := db.TranscriptCount(); n != 1 {
		t.Errorf("TranscriptCount = %d, want 1", n)
	}

	tr, err := db.GetTranscript("chat")
	if err != nil || tr == nil {
		t.Fatalf("GetTranscript = %v, %v", tr, err)
	}
	if tr.FirstAt != "2024-01-01 10:00:00" || tr.DateOrder != "dmy" {
		t.Errorf("transcript = %+v", tr)
	}
	if tr, _ := db.GetTranscript("nope"); tr != nil {
		t.Errorf("unknown key returned %+v", tr)
	}
}

func TestGetMessagesWindow(t *testing.T) {
	db := openLoaded(t)

	tests := []struct {
		name                 string
		hit, context         int
		wantLen, wantHit     int
		wantStart, wantTotal int
	}{
		{"middle", 2, 1, 3, 1, 1, 5},
		{"clamped start", 0, 2, 3, 0, 0, 5},
		{"clamped end", 4, 2, 3, 2, 2, 5},
		{"no hit is everything", -1, 1, 5, -1, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, hit, start, total, err := db.GetMessagesWindow("chat", tt.hit, tt.context)
			if err != nil {
				t.Fatal(err)
			}
			if len(msgs) != tt.wantLen || hit != tt.wantHit || start != tt.wantStart || total != tt.wantTotal {
				t.Errorf("window = len %d hit %d start %d total %d", len(msgs), hit, start, total)
			}
		})
	}

	msgs, hit, _, _, _ := db.GetMessagesWindow("chat", 2, 0)
	if hit != 0 || !msgs[0].System || msgs[0].Sender != parse.GroupNotification || msgs[0].LineNumber != 3 {
		t.Errorf("system message = %+v", msgs[0])
	}
}

func TestDeleteTranscript(t *testing.T) {
	db := openLoaded(t)
	if err := db.DeleteTranscript("chat"); err != nil {
		t.Fatal(err)
	}
	if n, _ := db.MessageCount(); n != 0 {
		t.Errorf("MessageCount = %d after delete", n)
	}
}

func TestIndexAll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.txt"), []byte(chat), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("shopping list\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stats, err := IndexAll(db, []string{dir}, parse.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Scanned != 2 || stats.Indexed != 1 || stats.Errors != 1 || stats.Messages != 5 {
		t.Errorf("stats = %s", stats)
	}
}
