package stats

import (
	"sort"

	"github.com/vmaerten/github-stats/internal/models"
)

// ReduceDurations collapses a collection of non-negative millisecond
// durations into summary metrics. An empty collection yields nil, which
// callers must treat as "no data" rather than zero. Input order is
// irrelevant; the slice is not modified.
func ReduceDurations(durations []int64) *models.TimeMetrics {
	if len(durations) == 0 {
		return nil
	}

	sorted := make([]int64, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, d := range sorted {
		sum += d
	}

	return &models.TimeMetrics{
		AverageMs: float64(sum) / float64(len(sorted)),
		MinMs:     sorted[0],
		MaxMs:     sorted[len(sorted)-1],
		MedianMs:  median(sorted),
	}
}

// median expects an ascending sorted, non-empty slice. For even counts it
// returns the mean of the two middle elements.
func median(sorted []int64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
