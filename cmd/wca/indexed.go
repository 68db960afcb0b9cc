package main

import (
	"fmt"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
)

// indexPaths loads the transcripts under paths into a fresh in-memory index.
func (e *env) indexPaths(paths ...string) (*index.DB, index.Stats, error) {
	opts, err := e.parseOptions()
	if err != nil {
		return nil, index.Stats{}, err
	}
	db, err := index.OpenMemory()
	if err != nil {
		return nil, index.Stats{}, err
	}
	stats, err := index.IndexAll(db, paths, opts, e.logger)
	if err != nil {
		db.Close()
		return nil, stats, err
	}
	if stats.Indexed == 0 {
		db.Close()
		return nil, stats, fmt.Errorf("no parsable transcript in %v (%s)", paths, stats)
	}
	return db, stats, nil
}
