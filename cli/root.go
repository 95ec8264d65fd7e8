package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configx "github.com/tanpawarit/krishi-mitra/pkg/config"
	logx "github.com/tanpawarit/krishi-mitra/pkg/logger"
)

// NewRootCommand builds the krishi-mitra command tree.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "krishi-mitra",
		Short: "Conversational farming assistant",
		Long: `krishi-mitra answers farmer questions using their stored profile, crops
and recent conversation. Weather questions go to the forecast service,
everything else to the configured LLM.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configx.SetEnvFile(envFile)

			logCfg, err := configx.New[logx.Config]("LOG")
			if err != nil {
				return err
			}
			logCfg.Output = cmd.ErrOrStderr()
			logx.Init(*logCfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file (default ./.env when present)")

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newFarmerCommand(),
		newCropCommand(),
		newAskCommand(),
	)
	return root
}

func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
