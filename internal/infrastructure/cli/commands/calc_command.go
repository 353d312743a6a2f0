package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/application/planner"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/cli/helpers"
)

// NewCalcCommand creates the calc command
func NewCalcCommand(container *app.Container) *cobra.Command {
	var (
		wake      string
		duration  float64
		windDown  int
		use24Hour bool
		save      bool
		quality   int
		technique string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate bedtime and wind-down start for a wake-up time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Planner == nil {
				return fmt.Errorf(ErrPlannerUnavailable)
			}
			ctx := cmd.Context()
			flags := cmd.Flags()

			var req planner.Request
			if flags.Changed("wake") {
				tod, err := domain.ParseTime(wake)
				if err != nil {
					return err
				}
				req.WakeTime = &tod
			}
			if flags.Changed("duration") {
				req.SleepDuration = &duration
			}
			if flags.Changed("wind-down") {
				w, err := domain.ParseWindDown(windDown)
				if err != nil {
					return err
				}
				req.WindDown = &w
			}

			result, err := container.Planner.Calculate(ctx, req)
			if err != nil {
				return err
			}
			if flags.Changed("24h") {
				result.Use24Hour = use24Hour
				if _, ok := container.Settings.UpdateAppPreferences(ctx, func(p *domain.AppPreferences) {
					p.Use24HourFormat = use24Hour
				}); !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: time format preference not saved")
				}
			}
			renderCalculation(cmd.OutOrStdout(), result)

			if !save {
				return nil
			}
			extras := domain.EntryExtras{}
			if flags.Changed("quality") {
				extras.Quality = &quality
			}
			if flags.Changed("technique") {
				extras.Technique = &technique
			}
			res := container.Planner.Save(ctx, result.Plan, extras)
			renderSaveResult(cmd.OutOrStdout(), res)
			if !res.Saved {
				return fmt.Errorf("plan was not saved to history")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&wake, "wake", "w", "", "Wake-up time (HH:MM or HH:MM AM/PM, default from last plan or 07:00)")
	cmd.Flags().Float64VarP(&duration, "duration", "d", domain.DefaultSleepDuration, "Sleep duration in hours (6-10, quarter-hour steps)")
	cmd.Flags().IntVar(&windDown, "wind-down", int(domain.DefaultWindDown), "Wind-down period in minutes (15|30|45|60)")
	cmd.Flags().BoolVar(&use24Hour, "24h", false, "Use 24-hour time format (remembered)")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Save the plan to history and schedule the wind-down reminder")
	cmd.Flags().IntVar(&quality, "quality", 0, "Sleep quality rating 1-5 to store with the saved plan")
	cmd.Flags().StringVar(&technique, "technique", "", "Wind-down technique to store with the saved plan")
	return cmd
}

// renderCalculation prints the computed times
func renderCalculation(out io.Writer, result planner.Result) {
	fmt.Fprintf(out, "Wake up:          %s\n", result.WakeUp())
	fmt.Fprintf(out, "Sleep duration:   %s\n", helpers.FormatSleepDuration(result.Plan.SleepDuration))
	if result.CycleAdjusted {
		fmt.Fprintf(out, "                  (adjusted from %s to whole 90-minute cycles)\n",
			helpers.FormatSleepDuration(result.RequestedDuration))
	}
	fmt.Fprintf(out, "Wind-down:        %d min\n", result.Plan.WindDownPeriod)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Start winding down at %s\n", result.WindDownStart())
	fmt.Fprintf(out, "Be asleep by         %s\n", result.Bedtime())
}

// renderSaveResult reports the side effects of saving a plan
func renderSaveResult(out io.Writer, res planner.SaveResult) {
	if !res.Saved {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, MsgSavedToHistory)
	if res.NotificationScheduled {
		fmt.Fprintln(out, "Wind-down reminder scheduled.")
	}
	if res.BlockingRequested {
		if res.BlockingSet {
			fmt.Fprintln(out, "Lockdown: app blocking set until wake-up.")
		} else {
			fmt.Fprintln(out, "Lockdown: app blocking unavailable.")
		}
	}
}
