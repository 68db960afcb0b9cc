package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/lexicon"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [chat.txt]",
		Short: "Self-check: config, lexicon, FTS5 and how a transcript parses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== Config ===")
			path := configPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				path = p
			}
			checkFile("File", path)

			e, err := loadEnv()
			if err != nil {
				return err
			}
			fmt.Printf("  Date order: %s\n", e.cfg.Transcript.DateOrder)
			fmt.Printf("  Log level:  %s\n", e.cfg.Log.Level)
			if e.cfg.Advice.APIKey == "" {
				fmt.Println("  Advice:     no API key (advice will fall back)")
			} else {
				fmt.Printf("  Advice:     %s\n", e.cfg.Advice.Model)
			}

			fmt.Println("\n=== Lexicon ===")
			src := "embedded"
			if e.cfg.Lexicon.StopWordsPath != "" {
				src = e.cfg.Lexicon.StopWordsPath
			}
			fmt.Printf("  Stop words: %d (%s, legacy match %v)\n", e.lex.StopWords.Len(), src, e.lex.StopWords.Legacy())
			fmt.Printf("  Moods:      %d categories, %d emoji\n", len(lexicon.Moods()), len(e.lex.Moods))

			fmt.Println("\n=== FTS5 ===")
			db, err := index.OpenMemory()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Println("  Status: OK")
				db.Close()
			}

			if len(args) == 0 {
				return nil
			}

			fmt.Println("\n=== Transcript ===")
			res, err := e.parseFile(args[0])
			if err != nil {
				fmt.Printf("  Parse error: %v\n", err)
				return nil
			}
			fmt.Print(render.Diagnostics(res.Meta, len(res.Records)))
			for i, line := range res.Meta.Preamble {
				if i == 3 {
					fmt.Printf("  ... %d more preamble lines\n", len(res.Meta.Preamble)-i)
					break
				}
				fmt.Printf("  preamble: %s\n", line)
			}
			return nil
		},
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND, using defaults)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
