package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func wordsCmd() *cobra.Command {
	var user string
	var limit int

	cmd := &cobra.Command{
		Use:   "words <chat.txt>",
		Short: "Most common words, stop words and media placeholders excluded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			recs, err := e.records(args[0], user)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = e.cfg.Lexicon.TopWords
			}
			words := analyze.MostCommonWords(user, recs, e.lex.StopWords, limit)
			return emit(words, func() string { return render.Ranked("Most common words", "Word", words) })
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().IntVar(&limit, "limit", analyze.DefaultTopWords, "Number of words to show")
	return cmd
}
