package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/sleepsync/internal/app"
	configapp "github.com/doeshing/sleepsync/internal/application/config"
	"github.com/doeshing/sleepsync/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/sleepsync/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect SleepSync configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigValidateCommand(container),
		newConfigResetCommand(container),
		newConfigDiffCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := helpers.GetConfigLoader(container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
			return nil
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := configapp.Validate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

// newConfigResetCommand creates the 'config reset' subcommand
func newConfigResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration (a backup is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.SaveConfigWithValidation(container, configinfra.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
			return nil
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show differences from the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			diff := cmp.Diff(configinfra.DefaultConfig(), cfg)
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoDifferencesFromDefault)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}

// showConfiguration prints the loaded configuration as YAML
func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(raw)
	return err
}
