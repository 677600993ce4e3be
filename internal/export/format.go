package export

import (
	"fmt"
	"time"

	"github.com/vmaerten/github-stats/internal/models"
)

// absent is how missing metrics render; zero durations render as "0s".
const absent = "—"

// formatMs renders a millisecond duration human-readably, e.g. "2h 15m".
func formatMs(ms float64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) - hours*60
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) - days*24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// formatMetrics renders the average of a metric, or the absence marker.
func formatMetrics(m *models.TimeMetrics) string {
	if m == nil {
		return absent
	}
	return formatMs(m.AverageMs)
}

// formatMetricsFull renders avg/min/max/median in one cell.
func formatMetricsFull(m *models.TimeMetrics) string {
	if m == nil {
		return absent
	}
	return fmt.Sprintf("avg %s, min %s, max %s, median %s",
		formatMs(m.AverageMs), formatMs(float64(m.MinMs)), formatMs(float64(m.MaxMs)), formatMs(m.MedianMs))
}

func formatOptionalMs(ms *int64) string {
	if ms == nil {
		return absent
	}
	return formatMs(float64(*ms))
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// statusLabel maps review statuses to display text.
func statusLabel(status models.ReviewStatus) string {
	switch status {
	case models.StatusOwnPR:
		return "own PR"
	case models.StatusApproved:
		return "approved"
	case models.StatusChangesRequested:
		return "changes requested"
	case models.StatusCommented:
		return "commented (review)"
	case models.StatusCommentedOnly:
		return "commented only"
	default:
		return "not reviewed"
	}
}
