package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/advice"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
)

func requestAdvice(ctx context.Context, e *env, user string, recs []parse.Record) string {
	corpus := advice.Corpus(user, recs, e.cfg.Advice.MaxMessages)
	return advice.New(e.cfg.Advice, e.logger).Generate(ctx, user, corpus)
}

func adviceCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "advice <chat.txt> --user <name>",
		Short: "Ask a language model for mood and conversation advice about one sender",
		Long: `Sends up to advice.max_messages of the sender's messages to an
OpenAI-compatible chat completion endpoint. Needs an API key in the config
file, WCA_ADVICE_OPENAI_API_KEY or OPENAI_API_KEY. Any failure prints a
fixed fallback message; run with log level debug to see why.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == analyze.Overall {
				return fmt.Errorf("advice needs a specific --user (see 'wca users')")
			}
			e, err := loadEnv()
			if err != nil {
				return err
			}
			recs, err := e.records(args[0], user)
			if err != nil {
				return err
			}

			text := requestAdvice(cmd.Context(), e, user, recs)
			out := struct {
				User   string `json:"user"`
				Advice string `json:"advice"`
			}{user, text}
			return emit(out, func() string {
				return render.Advice(user, text)
			})
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
