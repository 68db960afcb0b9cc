package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/lexicon"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/logging"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// env is what every command needs before it can look at a transcript.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	lex    lexicon.Lexicon
}

func loadEnv() (*env, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	lex, err := loadLexicon(cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, lex: lex}, nil
}

func loadLexicon(cfg config.Lexicon) (lexicon.Lexicon, error) {
	lex := lexicon.Default()
	if cfg.StopWordsPath != "" {
		sw, err := lexicon.LoadStopWords(cfg.StopWordsPath)
		if err != nil {
			return lexicon.Lexicon{}, err
		}
		lex.StopWords = sw
	}
	if cfg.LegacyStopWordMatch {
		lex.StopWords = lex.StopWords.WithLegacyMatch()
	}
	return lex, nil
}

func (e *env) parseOptions() (parse.Options, error) {
	loc, err := e.cfg.Location()
	if err != nil {
		return parse.Options{}, fmt.Errorf("timezone: %w", err)
	}
	return parse.Options{
		Order:    parse.DateOrder(e.cfg.Transcript.DateOrder),
		Location: loc,
		Logger:   e.logger,
	}, nil
}

func (e *env) parseFile(path string) (*parse.ParseResult, error) {
	opts, err := e.parseOptions()
	if err != nil {
		return nil, err
	}
	return parse.ParseFile(path, opts)
}

// records parses path and checks that user, if not Overall, appears in it.
func (e *env) records(path, user string) ([]parse.Record, error) {
	res, err := e.parseFile(path)
	if err != nil {
		return nil, err
	}
	if user != analyze.Overall && len(analyze.Scope(user, res.Records)) == 0 {
		e.logger.Warn("user has no messages in transcript", zap.String("user", user))
	}
	return res.Records, nil
}

func addUserFlag(cmd *cobra.Command, user *string) {
	cmd.Flags().StringVarP(user, "user", "u", analyze.Overall, "Sender to analyze (exact name) or Overall")
}

// emit prints v as JSON when --json is set, otherwise the text rendering.
func emit(v any, text func() string) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Print(text())
	return nil
}
