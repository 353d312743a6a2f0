package helpers

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/sleepsync/internal/domain"
)

func TestFormatSleepDuration(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{hours: 8, want: "8 hours"},
		{hours: 7.5, want: "7 hours 30 min"},
		{hours: 6.25, want: "6 hours 15 min"},
		{hours: 9.75, want: "9 hours 45 min"},
	}
	for _, tt := range tests {
		if got := FormatSleepDuration(tt.hours); got != tt.want {
			t.Errorf("FormatSleepDuration(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestAnalyzeHistory(t *testing.T) {
	q := func(n int) *int { return &n }
	s := func(v string) *string { return &v }
	entries := []domain.HistoryEntry{
		{SleepPlan: domain.SleepPlan{SleepDuration: 8}, Quality: q(4), Technique: s("Reading")},
		{SleepPlan: domain.SleepPlan{SleepDuration: 7}, Quality: q(2), Technique: s("reading ")},
		{SleepPlan: domain.SleepPlan{SleepDuration: 9}, Technique: s("meditation")},
		{SleepPlan: domain.SleepPlan{SleepDuration: 6}, Technique: s("  ")},
	}

	stats := AnalyzeHistory(entries)
	if stats.Entries != 4 || stats.AverageDuration != 7.5 {
		t.Errorf("entries/average = %d/%v", stats.Entries, stats.AverageDuration)
	}
	if stats.Rated != 2 || stats.AverageQuality != 3 {
		t.Errorf("rated/quality = %d/%v", stats.Rated, stats.AverageQuality)
	}
	want := map[string]int{"Reading": 2, "meditation": 1}
	if diff := cmp.Diff(want, stats.TechniqueFreq); diff != "" {
		t.Errorf("TechniqueFreq mismatch (-want +got):\n%s", diff)
	}

	top := TopTechniques(stats.TechniqueFreq, 1)
	if len(top) != 1 || top[0].Technique != "Reading" || top[0].Count != 2 {
		t.Errorf("TopTechniques() = %+v", top)
	}
	if all := TopTechniques(stats.TechniqueFreq, 0); len(all) != 2 {
		t.Errorf("TopTechniques(0) = %d entries, want 2", len(all))
	}
}

func TestAnalyzeHistoryEmpty(t *testing.T) {
	stats := AnalyzeHistory(nil)
	if stats.Entries != 0 || stats.AverageDuration != 0 || stats.AverageQuality != 0 {
		t.Errorf("AnalyzeHistory(nil) = %+v", stats)
	}
}

func TestSortNewestFirst(t *testing.T) {
	night := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	saved := []domain.HistoryEntry{
		{ID: "saved-recent", CreatedAt: night.Add(-24 * time.Hour)},
		{ID: "saved-old", CreatedAt: night.Add(-14 * 24 * time.Hour)},
	}
	watch := []domain.HistoryEntry{
		{ID: "watch-last-night", CreatedAt: night},
		{ID: "watch-week", CreatedAt: night.Add(-7 * 24 * time.Hour)},
	}
	merged := append(append([]domain.HistoryEntry{}, saved...), watch...)

	got := SortNewestFirst(merged)
	want := []string{"watch-last-night", "saved-recent", "watch-week", "saved-old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}
	if merged[0].ID != "saved-recent" {
		t.Error("SortNewestFirst reordered its input")
	}
}
