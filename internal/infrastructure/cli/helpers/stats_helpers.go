package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/sleepsync/internal/domain"
)

// HistoryStatistics summarises saved entries.
type HistoryStatistics struct {
	Entries         int
	AverageDuration float64
	Rated           int
	AverageQuality  float64
	TechniqueFreq   map[string]int
}

// TechniqueStatistic represents how often a wind-down technique was recorded
type TechniqueStatistic struct {
	Technique string
	Count     int
}

// AnalyzeHistory computes averages over entries. Techniques are grouped
// case-insensitively under their first spelling.
func AnalyzeHistory(entries []domain.HistoryEntry) HistoryStatistics {
	stats := HistoryStatistics{TechniqueFreq: make(map[string]int)}
	spelling := make(map[string]string)
	var totalDuration float64
	var totalQuality int

	for _, e := range entries {
		stats.Entries++
		totalDuration += e.SleepDuration
		if e.Quality != nil {
			stats.Rated++
			totalQuality += *e.Quality
		}
		if e.Technique == nil {
			continue
		}
		name := strings.TrimSpace(*e.Technique)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := spelling[key]; !ok {
			spelling[key] = name
		}
		stats.TechniqueFreq[spelling[key]]++
	}

	if stats.Entries > 0 {
		stats.AverageDuration = totalDuration / float64(stats.Entries)
	}
	if stats.Rated > 0 {
		stats.AverageQuality = float64(totalQuality) / float64(stats.Rated)
	}
	return stats
}

// TopTechniques returns the top N most frequently used techniques
// If limit is 0 or negative, returns all techniques
func TopTechniques(freq map[string]int, limit int) []TechniqueStatistic {
	stats := make([]TechniqueStatistic, 0, len(freq))
	for technique, count := range freq {
		stats = append(stats, TechniqueStatistic{Technique: technique, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Technique < stats[j].Technique
		}
		return stats[i].Count > stats[j].Count
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// SortNewestFirst orders entries by creation time, newest first, keeping the
// relative order of entries created at the same instant. Imported watch
// sessions are merged into the saved history this way for display.
func SortNewestFirst(entries []domain.HistoryEntry) []domain.HistoryEntry {
	sorted := make([]domain.HistoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
