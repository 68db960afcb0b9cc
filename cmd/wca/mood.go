package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/lexicon"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

type mood struct {
	Moods     map[lexicon.Mood]int `json:"moods"`
	Sentiment analyze.Sentiment    `json:"sentiment"`
	Dominant  analyze.Emotion      `json:"dominant"`
}

func computeMood(user string, recs []parse.Record, moods lexicon.MoodMap, logger *zap.Logger) mood {
	scorer := analyze.NewVaderScorer()
	return mood{
		Moods:     analyze.ExtractMoodCounts(user, recs, moods),
		Sentiment: analyze.SentimentAnalysis(user, recs, scorer),
		Dominant:  analyze.DetectDominantEmotion(user, recs, scorer, logger),
	}
}

func moodCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "mood <chat.txt>",
		Short: "Mood emoji counters, sentiment split and dominant emotion",
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
			m := computeMood(user, recs, e.lex.Moods, e.logger)
			return emit(m, func() string { return render.Moods(m.Moods, m.Sentiment, m.Dominant) })
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
