package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/cli/helpers"
)

// NewPlanCommand creates the plan command with all subcommands
func NewPlanCommand(container *app.Container) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect the current sleep plan",
	}
	planCmd.AddCommand(newPlanShowCommand(container))
	return planCmd
}

// newPlanShowCommand creates the 'plan show' subcommand
func newPlanShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the last calculated plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			plan, ok := container.Settings.LoadSleepPlan(ctx)
			if !ok {
				fmt.Fprintln(out, MsgNoPlanSaved)
				return nil
			}
			prefs, _ := container.Settings.LoadAppPreferences(ctx)
			times := plan.Times()
			fmt.Fprintf(out, "Wake up:        %s (%s)\n",
				domain.FormatTime(plan.WakeUpTime, prefs.Use24HourFormat),
				plan.WakeUpTime.Format(DateTimeFormat))
			fmt.Fprintf(out, "Sleep duration: %s\n", helpers.FormatSleepDuration(plan.SleepDuration))
			fmt.Fprintf(out, "Wind-down:      %d min\n", plan.WindDownPeriod)
			fmt.Fprintf(out, "Bedtime:        %s\n", domain.FormatTime(times.Bedtime, prefs.Use24HourFormat))
			fmt.Fprintf(out, "Wind-down at:   %s\n", domain.FormatTime(times.WindDownStart, prefs.Use24HourFormat))
			return nil
		},
	}
}
