package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show SleepSync version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			return writeBuildInfo(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// writeBuildInfo prints version, commit, build date and toolchain
func writeBuildInfo(out io.Writer) error {
	commit, built := version.Commit, version.BuildDate
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	_, err := fmt.Fprintf(out, "sleepsync %s (commit %s, built %s, %s %s/%s)\n",
		version.Version, commit, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
