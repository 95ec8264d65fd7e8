package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	var farmerID int64

	cmd := &cobra.Command{
		Use:   "ask --farmer <id> <question...>",
		Short: "Ask one question on behalf of a farmer and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			orchestrator, err := newOrchestrator(cmd.Context(), store)
			if err != nil {
				return err
			}

			reply, err := orchestrator.HandleRequest(cmd.Context(), farmerID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().Int64Var(&farmerID, "farmer", 0, "farmer id (required)")
	_ = cmd.MarkFlagRequired("farmer")
	return cmd
}
