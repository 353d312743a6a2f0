package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose storage, health import and reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
		},
	}
}

// runDoctorDiagnostics runs environment diagnostics
func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return fmt.Errorf(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	if report.Failed() {
		return fmt.Errorf("diagnostics reported failures")
	}
	return nil
}

// displayDoctorReport displays the health check report
func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
	if len(report.Checks) > 0 {
		fmt.Fprintf(out, "\n%s\n", report.Summary())
	}
}
