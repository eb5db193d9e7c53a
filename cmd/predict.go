package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/present"
	"github.com/abhisek/cropcast/internal/prompt"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Submit one set of readings and print the ranked crops",
	Example: "  cropcast predict --nitrogen 90 --phosphorus 42 --potassium 43 \\\n" +
		"    --temperature 20.8 --humidity 82 --ph 6.5 --rainfall 202.9",
	RunE: runPredict,
}

func init() {
	for _, spec := range form.Specs() {
		predictCmd.Flags().String(string(spec.Field), "",
			fmt.Sprintf("%s in %s (typical %g to %g)", spec.Label, spec.Unit, spec.Min, spec.Max))
	}
	predictCmd.Flags().Bool("json", false, "Print the ranked result as JSON")
}

// rankedJSON is the --json output row.
type rankedJSON struct {
	Rank        int     `json:"rank"`
	Crop        string  `json:"crop"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	Tier        string  `json:"tier"`
	Badge       string  `json:"badge"`
}

func runPredict(cmd *cobra.Command, _ []string) error {
	state := predict.NewState()
	for _, f := range form.Fields() {
		raw, _ := cmd.Flags().GetString(string(f))
		next := predict.UpdateField(state, f, raw)
		if next.Values.Get(f) != raw {
			return fmt.Errorf("--%s: %q is not a plain decimal number", f, raw)
		}
		state = next
	}

	_, predictor, err := newPredictor()
	if err != nil {
		return err
	}
	pipeline := predict.NewPipeline(predictor,
		predict.WithLogger(logger),
		predict.WithSubmitTimeout(cfg.Timeout),
	)

	state, err = pipeline.Submit(cmd.Context(), state)
	if err != nil {
		return err
	}
	if state.Err != "" {
		return errors.New(state.Err)
	}

	rows := present.Present(state.Predictions)
	out := cmd.OutOrStdout()

	asJSON, _ := cmd.Flags().GetBool("json")
	if !asJSON {
		for _, line := range prompt.FormatResults(rows) {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	payload := make([]rankedJSON, 0, len(rows))
	for _, r := range rows {
		payload = append(payload, rankedJSON{
			Rank:        r.Rank,
			Crop:        r.Crop,
			Label:       r.DisplayName,
			Probability: r.Probability,
			Tier:        r.Tier.String(),
			Badge:       r.Tier.Badge(),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"predictions": payload})
}
