package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tanpawarit/krishi-mitra/api"
	configx "github.com/tanpawarit/krishi-mitra/pkg/config"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpCfg, err := configx.New[api.Config]("HTTP")
			if err != nil {
				return err
			}
			if addr != "" {
				httpCfg.Addr = addr
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			orchestrator, err := newOrchestrator(ctx, store)
			if err != nil {
				return err
			}

			handler, err := api.NewHandler(store, orchestrator)
			if err != nil {
				return err
			}
			return api.Serve(ctx, api.NewEcho(handler), *httpCfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
