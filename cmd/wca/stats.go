package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func statsCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "stats <chat.txt>",
		Short: "Message, word, media and link counts; busiest users for Overall",
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

			out := struct {
				User  string        `json:"user"`
				Stats analyze.Stats `json:"stats"`
				Busy  *analyze.Busy `json:"busy,omitempty"`
			}{User: user, Stats: analyze.FetchStats(user, recs)}
			if user == analyze.Overall {
				busy := analyze.MostBusyUsers(recs)
				out.Busy = &busy
			}

			return emit(out, func() string {
				s := render.Stats(user, out.Stats)
				if out.Busy != nil {
					s += render.Busy(*out.Busy)
				}
				return s
			})
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
