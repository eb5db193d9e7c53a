package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/cropcast/internal/stubserver"
)

var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Serve an offline stand-in for the prediction service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.StubAddr
		}

		var opts []stubserver.Option
		opts = append(opts, stubserver.WithLogger(logger))
		if noModel, _ := cmd.Flags().GetBool("no-model"); noModel {
			opts = append(opts, stubserver.WithoutModel())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return stubserver.New(opts...).ListenAndServe(ctx, addr)
	},
}

func init() {
	stubServerCmd.Flags().String("addr", "", "Listen address (overrides CROPCAST_STUB_ADDR)")
	stubServerCmd.Flags().Bool("no-model", false, "Answer as if the model failed to load")
}
