package main

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

type report struct {
	User     string               `json:"user"`
	Stats    analyze.Stats        `json:"stats"`
	Busy     *analyze.Busy        `json:"busy,omitempty"`
	Monthly  []analyze.MonthPoint `json:"monthly"`
	Daily    []analyze.DayPoint   `json:"daily"`
	Activity activity             `json:"activity"`
	Words    []analyze.KV         `json:"words"`
	Emoji    []analyze.KV         `json:"emoji"`
	Mood     mood                 `json:"mood"`
	Advice   string               `json:"advice,omitempty"`
}

func reportCmd() *cobra.Command {
	var user string
	var withAdvice bool

	cmd := &cobra.Command{
		Use:   "report <chat.txt>",
		Short: "Every view for one user in a single run",
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

			r := report{User: user}
			// each goroutine writes its own field; recs is read-only
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				r.Stats = analyze.FetchStats(user, recs)
				if user == analyze.Overall {
					busy := analyze.MostBusyUsers(recs)
					r.Busy = &busy
				}
				return nil
			})
			g.Go(func() error {
				r.Monthly = analyze.MonthlyTimeline(user, recs)
				r.Daily = analyze.DailyTimeline(user, recs)
				return nil
			})
			g.Go(func() error {
				r.Activity = computeActivity(user, recs)
				return nil
			})
			g.Go(func() error {
				r.Words = analyze.MostCommonWords(user, recs, e.lex.StopWords, e.cfg.Lexicon.TopWords)
				r.Emoji = analyze.EmojiFrequency(user, recs)
				return nil
			})
			g.Go(func() error {
				r.Mood = computeMood(user, recs, e.lex.Moods, e.logger)
				return nil
			})
			if withAdvice && user != analyze.Overall {
				g.Go(func() error {
					r.Advice = requestAdvice(ctx, e, user, recs)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return emit(r, func() string { return renderReport(r) })
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().BoolVar(&withAdvice, "advice", false, "Also request model advice (needs a specific --user)")
	return cmd
}

func renderReport(r report) string {
	var b strings.Builder
	b.WriteString(render.Stats(r.User, r.Stats))
	if r.Busy != nil {
		b.WriteString(render.Busy(*r.Busy))
	}
	b.WriteString(render.Monthly(r.Monthly))
	b.WriteString(render.Daily(r.Daily))
	b.WriteString(renderActivity(r.Activity))
	b.WriteString(render.Ranked("Most common words", "Word", r.Words))
	b.WriteString(render.Ranked("Emoji", "Emoji", r.Emoji))
	b.WriteString(render.Moods(r.Mood.Moods, r.Mood.Sentiment, r.Mood.Dominant))
	if r.Advice != "" {
		b.WriteString(render.Advice(r.User, r.Advice))
	}
	return b.String()
}
