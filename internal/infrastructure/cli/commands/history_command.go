package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/sleepsync/internal/app"
	"github.com/doeshing/sleepsync/internal/domain"
	"github.com/doeshing/sleepsync/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved sleep plans",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryReviewCommand(container),
		newHistoryDeleteCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var withWatch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, withWatch)
		},
	}

	cmd.Flags().BoolVar(&withWatch, "with-watch", true, "Include sessions imported from the health provider when watch tracking is on")
	return cmd
}

// newHistoryReviewCommand creates the 'history review' subcommand
func newHistoryReviewCommand(container *app.Container) *cobra.Command {
	var (
		quality   int
		technique string
		title     string
	)

	cmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Record quality, technique or a title for a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var update domain.EntryUpdate
			if flags.Changed("quality") {
				update.Quality = &quality
			}
			if flags.Changed("technique") {
				update.Technique = &technique
			}
			if flags.Changed("title") {
				update.Title = &title
			}
			if update == (domain.EntryUpdate{}) {
				return fmt.Errorf(ErrNothingToUpdate)
			}
			if err := update.Validate(); err != nil {
				return fmt.Errorf("quality must be between %d and %d", domain.MinQuality, domain.MaxQuality)
			}
			return reviewHistoryEntry(cmd.Context(), cmd.OutOrStdout(), container, args[0], update)
		},
	}

	cmd.Flags().IntVarP(&quality, "quality", "q", 3, "Sleep quality from 1 (poor) to 5 (great)")
	cmd.Flags().StringVarP(&technique, "technique", "t", "", "Meditation or wind-down technique used")
	cmd.Flags().StringVar(&title, "title", "", "Short label for the entry")
	return cmd
}

// newHistoryDeleteCommand creates the 'history delete' subcommand
func newHistoryDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			if !container.History.Delete(cmd.Context(), args[0]) {
				return fmt.Errorf("failed to delete history entry %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export saved history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			if err := container.History.Export(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to export history: %w", err)
			}
			return nil
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show average duration, quality and favourite techniques",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// listHistoryEntries lists saved (and optionally imported) entries
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, withWatch bool) error {
	if container.History == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}

	prefs, _ := container.Settings.LoadAppPreferences(ctx)
	var entries []domain.HistoryEntry
	if withWatch {
		entries = helpers.SortNewestFirst(container.History.WithWatchSessions(ctx, prefs))
	} else {
		entries = container.History.Load(ctx)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(out, formatHistoryLine(e, prefs.Use24HourFormat))
	}
	return nil
}

// formatHistoryLine renders one entry on a single line
func formatHistoryLine(e domain.HistoryEntry, use24Hour bool) string {
	times := e.Times()
	line := fmt.Sprintf("%s | %s | wake %s | bed %s | %s | wind-down %d min",
		e.ID,
		humanize.Time(e.CreatedAt),
		domain.FormatTime(e.WakeUpTime, use24Hour),
		domain.FormatTime(times.Bedtime, use24Hour),
		helpers.FormatSleepDuration(e.SleepDuration),
		e.WindDownPeriod)
	if e.Title != nil && *e.Title != "" {
		line += " | " + *e.Title
	}
	if e.Quality != nil {
		line += fmt.Sprintf(" | quality %d/5", *e.Quality)
	}
	if e.Technique != nil && *e.Technique != "" {
		line += " | " + *e.Technique
	}
	if e.Watch != nil {
		line += " | watch"
		if e.Watch.Quality != nil {
			line += fmt.Sprintf(" %d", *e.Watch.Quality)
		}
	}
	return line
}

// reviewHistoryEntry merges review fields into an entry
func reviewHistoryEntry(ctx context.Context, out io.Writer, container *app.Container, id string, update domain.EntryUpdate) error {
	if container.History == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}
	if _, ok := container.History.Find(ctx, id); !ok {
		return fmt.Errorf("history entry %s not found", id)
	}
	if !container.History.Update(ctx, id, update) {
		return fmt.Errorf("failed to update history entry %s", id)
	}
	fmt.Fprintf(out, "Updated %s\n", id)
	return nil
}

// showHistoryStats displays aggregate statistics over saved entries
func showHistoryStats(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.History == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}

	entries := container.History.Load(ctx)
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := helpers.AnalyzeHistory(entries)
	fmt.Fprintf(out, "Entries analyzed: %d\n", stats.Entries)
	fmt.Fprintf(out, "Average duration: %s\n", helpers.FormatSleepDuration(domain.RoundToQuarterHour(stats.AverageDuration)))
	if stats.Rated > 0 {
		fmt.Fprintf(out, "Average quality:  %.1f/5 (%d rated)\n", stats.AverageQuality, stats.Rated)
	}
	techniques := helpers.TopTechniques(stats.TechniqueFreq, 3)
	if len(techniques) > 0 {
		fmt.Fprintln(out, "Top techniques:")
		for _, t := range techniques {
			fmt.Fprintf(out, "  %s (%d)\n", t.Technique, t.Count)
		}
	}
	return nil
}
