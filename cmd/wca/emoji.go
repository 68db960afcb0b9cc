package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func emojiCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "emoji <chat.txt>",
		Short: "Emoji ranked by use",
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
			freq := analyze.EmojiFrequency(user, recs)
			return emit(freq, func() string { return render.Ranked("Emoji", "Emoji", freq) })
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
