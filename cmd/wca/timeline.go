package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func timelineCmd() *cobra.Command {
	var user string
	var daily bool

	cmd := &cobra.Command{
		Use:   "timeline <chat.txt>",
		Short: "Messages per month (or per day with --daily), oldest first",
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

			if daily {
				points := analyze.DailyTimeline(user, recs)
				return emit(points, func() string { return render.Daily(points) })
			}
			points := analyze.MonthlyTimeline(user, recs)
			return emit(points, func() string { return render.Monthly(points) })
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().BoolVar(&daily, "daily", false, "Count per calendar day instead of per month")
	return cmd
}
