package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func plainSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	return strings.ReplaceAll(snippet, "<<<", "")
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func searchCmd() *cobra.Command {
	var sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <chat.txt|dir> <query>",
		Short: "Full-text search over messages in one or more exports",
		Long: `Search messages using FTS5. Scripts that need emoji, Devanagari or Han
text fall back to substring matching. Output is TSV when piped:
  file, messageIndex, timestamp, sender, snippet

Recommended shell function (add to .zshrc):
  wcaf() {
    wca search "$1" "${*:2}" | fzf \
      --delimiter='\t' --with-nth=3.. \
      --preview 'wca preview {1} --hit {2} --context 5 --query {q}' \
      --preview-window=right:60%:wrap \
      --bind 'enter:execute(wca open {1} --hit {2})'
  }`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			db, _, err := e.indexPaths(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := search.Search(db, search.Options{
				Query:  strings.Join(args[1:], " "),
				Sender: sender,
				Since:  since,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return emit(results, nil)
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			tty := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := oneLine(r.Snippet)
				if !tty {
					// first two fields stay plain for fzf {1} {2}
					fmt.Printf("%s\t%d\t%s\t%s\t%s\n", r.TranscriptKey, r.Index, r.Ts, r.Sender, plainSnippet(snippet))
					continue
				}
				fmt.Printf("%s%s:%d%s %s%s%s %s%s%s  %s\n",
					sColorDim, filepath.Base(r.TranscriptKey), r.Index, sColorReset,
					sColorDim, r.Ts, sColorReset,
					sColorBlue, r.Sender, sColorReset,
					colorizeSnippet(snippet))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this sender")
	cmd.Flags().StringVar(&since, "since", "", "Only messages on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
