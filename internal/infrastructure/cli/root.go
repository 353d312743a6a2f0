package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.ConfigPath, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "sleepsync",
		Short: "SleepSync - bedtime planner",
		Long:  "SleepSync works out when to start winding down and when to be asleep for a given wake-up time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = container.Logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.NewCalcCommand(container),
		commands.NewPlanCommand(container),
		commands.NewPrefsCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewRemindCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, nil
}
