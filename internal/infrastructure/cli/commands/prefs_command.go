package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/cli/helpers"
)

// NewPrefsCommand creates the prefs command with all subcommands
func NewPrefsCommand(container *app.Container) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change app preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _ := container.Settings.LoadAppPreferences(cmd.Context())
			renderPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	}
	prefsCmd.AddCommand(
		newPrefsShowCommand(container),
		newPrefsSetCommand(container),
	)
	return prefsCmd
}

// newPrefsShowCommand creates the 'prefs show' subcommand
func newPrefsShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _ := container.Settings.LoadAppPreferences(cmd.Context())
			renderPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	}
}

// newPrefsSetCommand creates the 'prefs set' subcommand
func newPrefsSetCommand(container *app.Container) *cobra.Command {
	var (
		use24Hour       bool
		theme           string
		optimizeCycles  bool
		defaultDuration float64
		defaultWindDown int
		watchTracking   bool
		lockdown        bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.NFlag() == 0 {
				return fmt.Errorf(ErrNothingToUpdate)
			}
			var windDown domain.WindDown
			if flags.Changed("default-wind-down") {
				w, err := domain.ParseWindDown(defaultWindDown)
				if err != nil {
					return err
				}
				windDown = w
			}
			if flags.Changed("default-duration") {
				if err := domain.ValidateSleepDuration(defaultDuration); err != nil {
					return err
				}
			}
			if flags.Changed("theme") && !domain.ThemeMode(theme).Valid() {
				return fmt.Errorf("theme must be light|dark|system, got %s", theme)
			}

			prefs, ok := container.Settings.UpdateAppPreferences(cmd.Context(), func(p *domain.AppPreferences) {
				if flags.Changed("24h") {
					p.Use24HourFormat = use24Hour
				}
				if flags.Changed("theme") {
					p.Theme = domain.ThemeMode(theme)
				}
				if flags.Changed("optimize-cycles") {
					p.OptimizeSleepCycles = optimizeCycles
				}
				if flags.Changed("default-duration") {
					p.DefaultSleepDuration = defaultDuration
				}
				if flags.Changed("default-wind-down") {
					p.DefaultWindDownPeriod = windDown
				}
				if flags.Changed("watch-tracking") {
					p.EnableWatchTracking = watchTracking
				}
				if flags.Changed("lockdown") {
					p.LockdownMode = lockdown
				}
			})
			if !ok {
				return fmt.Errorf("preferences were not saved")
			}
			renderPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&use24Hour, "24h", false, "Use 24-hour time format")
	cmd.Flags().StringVar(&theme, "theme", string(domain.ThemeSystem), "Theme (light|dark|system)")
	cmd.Flags().BoolVar(&optimizeCycles, "optimize-cycles", false, "Snap sleep duration to whole 90-minute cycles")
	cmd.Flags().Float64Var(&defaultDuration, "default-duration", domain.DefaultSleepDuration, "Default sleep duration in hours")
	cmd.Flags().IntVar(&defaultWindDown, "default-wind-down", int(domain.DefaultWindDown), "Default wind-down in minutes (15|30|45|60)")
	cmd.Flags().BoolVar(&watchTracking, "watch-tracking", false, "Import sleep sessions from the configured health provider")
	cmd.Flags().BoolVar(&lockdown, "lockdown", false, "Block distracting apps from wind-down until wake-up")
	return cmd
}

// renderPreferences prints every preference
func renderPreferences(out io.Writer, prefs domain.AppPreferences) {
	reminder := "off"
	if prefs.WindDownReminderTime != nil {
		reminder = prefs.WindDownReminderTime.String()
	}
	fmt.Fprintf(out, "24-hour format:        %t\n", prefs.Use24HourFormat)
	fmt.Fprintf(out, "Theme:                 %s\n", prefs.Theme)
	fmt.Fprintf(out, "Optimize sleep cycles: %t\n", prefs.OptimizeSleepCycles)
	fmt.Fprintf(out, "Default duration:      %s\n", helpers.FormatSleepDuration(prefs.DefaultSleepDuration))
	fmt.Fprintf(out, "Default wind-down:     %d min\n", prefs.DefaultWindDownPeriod)
	fmt.Fprintf(out, "Watch tracking:        %t\n", prefs.EnableWatchTracking)
	fmt.Fprintf(out, "Lockdown mode:         %t\n", prefs.LockdownMode)
	fmt.Fprintf(out, "Wind-down reminder:    %s\n", reminder)
}
