package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/domain"
)

// NewRemindCommand creates the remind command with all subcommands
func NewRemindCommand(container *app.Container) *cobra.Command {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage the daily wind-down reminder",
	}
	remindCmd.AddCommand(
		newRemindSetCommand(container),
		newRemindClearCommand(container),
		newRemindListCommand(container),
	)
	return remindCmd
}

// newRemindSetCommand creates the 'remind set' subcommand
func newRemindSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <HH:MM>",
		Short: "Remind me to wind down every day at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Planner == nil {
				return fmt.Errorf(ErrPlannerUnavailable)
			}
			tod, err := domain.ParseTime(args[0])
			if err != nil {
				return err
			}
			res := container.Planner.SetReminder(cmd.Context(), &tod)
			if !res.Saved {
				return fmt.Errorf("reminder time was not saved")
			}
			out := cmd.OutOrStdout()
			if res.NextAt == nil {
				fmt.Fprintf(out, "Reminder time saved as %s, but no notification could be scheduled.\n", tod)
				return nil
			}
			prefs, _ := container.Settings.LoadAppPreferences(cmd.Context())
			fmt.Fprintf(out, "Next wind-down reminder: %s %s\n",
				res.NextAt.Format(DateTimeFormat),
				domain.FormatTime(*res.NextAt, prefs.Use24HourFormat))
			return nil
		},
	}
}

// newRemindClearCommand creates the 'remind clear' subcommand
func newRemindClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Turn off the daily reminder and cancel pending notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Planner == nil {
				return fmt.Errorf(ErrPlannerUnavailable)
			}
			if res := container.Planner.SetReminder(cmd.Context(), nil); !res.Saved {
				return fmt.Errorf("reminder setting was not saved")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder cleared.")
			return nil
		},
	}
}

// newRemindListCommand creates the 'remind list' subcommand
func newRemindListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Scheduler == nil {
				return fmt.Errorf(ErrSchedulerUnavailable)
			}
			pending, err := container.Scheduler.Pending(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read pending notifications: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, MsgNoPendingReminders)
				return nil
			}
			for _, n := range pending {
				fmt.Fprintf(out, "%s | %s\n", n.FireAt.Format(domain.TimestampFormat), n.Message)
			}
			return nil
		},
	}
}
