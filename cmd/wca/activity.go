package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

type activity struct {
	Weekdays map[string]int  `json:"weekdays"`
	Months   map[string]int  `json:"months"`
	Heatmap  analyze.Heatmap `json:"heatmap"`
}

func computeActivity(user string, recs []parse.Record) activity {
	return activity{
		Weekdays: analyze.WeekActivityMap(user, recs),
		Months:   analyze.MonthActivityMap(user, recs),
		Heatmap:  analyze.ActivityHeatmap(user, recs),
	}
}

func renderActivity(a activity) string {
	return render.ActivityMap("Most busy days", a.Weekdays, parse.Weekdays()) +
		render.ActivityMap("Most busy months", a.Months, parse.MonthNames()) +
		render.Heatmap(a.Heatmap)
}

func activityCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "activity <chat.txt>",
		Short: "Busy weekdays, busy months and the weekday x hour heatmap",
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
			a := computeActivity(user, recs)
			return emit(a, func() string { return renderActivity(a) })
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
