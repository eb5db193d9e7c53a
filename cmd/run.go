package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/cropcast/internal/app"
)

// runApp builds the prediction client and launches the TUI.
func runApp(cmd *cobra.Command) error {
	_, predictor, err := newPredictor()
	if err != nil {
		return err
	}

	return app.Run(cmd.Context(), app.Options{
		Predictor: predictor,
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.Timeout,
		Celebrate: cfg.Celebrate,
		Logger:    logger,
	})
}
