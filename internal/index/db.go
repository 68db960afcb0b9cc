package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// TimeLayout is how message timestamps are stored; it sorts lexically.
const TimeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    transcript_key TEXT PRIMARY KEY,
    file_path      TEXT NOT NULL,
    first_at       TEXT NOT NULL DEFAULT '',
    last_at        TEXT NOT NULL DEFAULT '',
    date_order     TEXT NOT NULL DEFAULT '',
    mtime          INTEGER NOT NULL DEFAULT 0,
    size           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    transcript_key TEXT NOT NULL,
    idx            INTEGER NOT NULL,
    ts             TEXT NOT NULL,
    sender         TEXT NOT NULL,
    system         INTEGER NOT NULL DEFAULT 0,
    body           TEXT NOT NULL,
    line_number    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (transcript_key, idx)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
END;
`

// DB is a per-run index of parsed transcripts. It lives in memory and is
// gone when the process exits.
type DB struct {
	db *sql.DB
}

func OpenMemory() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) DeleteTranscript(key string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE transcript_key = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM transcripts WHERE transcript_key = ?", key); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) TranscriptCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

type TranscriptRow struct {
	Key       string
	FilePath  string
	FirstAt   string
	LastAt    string
	DateOrder string
}

func (d *DB) GetTranscript(key string) (*TranscriptRow, error) {
	var t TranscriptRow
	err := d.db.QueryRow(
		"SELECT transcript_key, file_path, first_at, last_at, date_order FROM transcripts WHERE transcript_key = ?",
		key,
	).Scan(&t.Key, &t.FilePath, &t.FirstAt, &t.LastAt, &t.DateOrder)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type MessageRow struct {
	TranscriptKey string
	Index         int
	Ts            string
	Sender        string
	System        bool
	Body          string
	LineNumber    int
}

const messageColumns = "transcript_key, idx, ts, sender, system, body, line_number"

func scanMessage(rows *sql.Rows) (MessageRow, error) {
	var m MessageRow
	err := rows.Scan(&m.TranscriptKey, &m.Index, &m.Ts, &m.Sender, &m.System, &m.Body, &m.LineNumber)
	return m, err
}

// GetMessagesWindow returns up to context messages either side of hitIdx.
// startPos is the number of messages before the returned window and
// totalCount the number of messages in the transcript. A negative hitIdx
// returns the whole transcript.
func (d *DB) GetMessagesWindow(key string, hitIdx, context int) (msgs []MessageRow, localHit int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE transcript_key = ?", key,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// idx is dense and 0-based, so it is also the row position
	startPos = 0
	limit := totalCount
	if hitIdx >= 0 && hitIdx < totalCount {
		startPos = max(hitIdx-context, 0)
		endPos := min(hitIdx+context+1, totalCount)
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE transcript_key = ? ORDER BY idx LIMIT ? OFFSET ?",
		key, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	localHit = -1
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, -1, 0, 0, err
		}
		if m.Index == hitIdx {
			localHit = len(msgs)
		}
		msgs = append(msgs, m)
	}
	return msgs, localHit, startPos, totalCount, rows.Err()
}
