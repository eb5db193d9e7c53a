package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the prediction service is up and has a model loaded",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newPredictor()
		if err != nil {
			return err
		}

		h, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s: %w", client.BaseURL(), err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  status=%s  model_loaded=%t\n", client.BaseURL(), h.Status, h.ModelLoaded)
		if !h.ModelLoaded {
			return fmt.Errorf("model not loaded")
		}
		return nil
	},
}
