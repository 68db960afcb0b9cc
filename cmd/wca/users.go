package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users <chat.txt>",
		Short: "List the senders that can be passed to --user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			recs, err := e.records(args[0], analyze.Overall)
			if err != nil {
				return err
			}
			senders := analyze.Senders(recs)
			return emit(append([]string{analyze.Overall}, senders...), func() string {
				return render.Users(senders)
			})
		},
	}
}
