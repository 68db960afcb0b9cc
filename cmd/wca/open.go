package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/open"
)

func openCmd() *cobra.Command {
	var hit int

	cmd := &cobra.Command{
		Use:   "open <chat.txt>",
		Short: "Open the export in $EDITOR at a message's line",
		Args:  cobra.ExactArgs(1),
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

			return open.OpenTranscript(db, args[0], hit)
		},
	}

	cmd.Flags().IntVar(&hit, "hit", -1, "Message index to jump to")

	return cmd
}
