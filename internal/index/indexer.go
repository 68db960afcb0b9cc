package index

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/scan"
)

type Stats struct {
	Scanned  int
	Indexed  int
	Messages int
	Errors   int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d indexed=%d messages=%d errors=%d",
		s.Scanned, s.Indexed, s.Messages, s.Errors)
}

// IndexAll parses every transcript under the given paths and loads it.
// Files that fail to parse are counted and logged, not fatal.
func IndexAll(db *DB, paths []string, opts parse.Options, logger *zap.Logger) (Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var stats Stats

	files, err := scan.Resolve(paths...)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	for _, fi := range files {
		result, err := parse.ParseFile(fi.Path, opts)
		if err != nil {
			stats.Errors++
			logger.Warn("skipping transcript", zap.String("path", fi.Path), zap.Error(err))
			continue
		}
		if len(result.Records) == 0 {
			continue
		}
		if err := IndexTranscript(db, fi.Path, result); err != nil {
			stats.Errors++
			logger.Warn("index transcript", zap.String("path", fi.Path), zap.Error(err))
			continue
		}
		stats.Indexed++
		stats.Messages += len(result.Records)
	}
	return stats, nil
}

// IndexTranscript replaces whatever is stored under key with result.
func IndexTranscript(db *DB, key string, result *parse.ParseResult) error {
	if err := db.DeleteTranscript(key); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO transcripts (transcript_key, file_path, first_at, last_at, date_order, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key,
		result.Meta.FilePath,
		result.Meta.FirstAt.Format(TimeLayout),
		result.Meta.LastAt.Format(TimeLayout),
		string(result.Meta.Order),
		result.Meta.Mtime.Unix(),
		result.Meta.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (transcript_key, idx, ts, sender, system, body, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range result.Records {
		_, err := stmt.Exec(
			key,
			r.Index,
			r.Timestamp.Format(TimeLayout),
			r.Sender,
			r.System,
			r.Body,
			r.LineNumber,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
