package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/prompt"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Prompt for each reading line by line, without the full-screen UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, predictor, err := newPredictor()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		opts := []predict.PipelineOption{
			predict.WithLogger(logger),
			predict.WithSubmitTimeout(cfg.Timeout),
		}
		if cfg.Celebrate {
			opts = append(opts, predict.WithCelebrator(func(predict.Confetti) {
				fmt.Fprintln(out, "✦ ✧ ✦  Prediction ready  ✦ ✧ ✦")
			}))
		}

		session := prompt.NewSession(prompt.NewSurveyDriver(out), predict.NewPipeline(predictor, opts...))
		err = session.Run(cmd.Context())
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		return err
	},
}
