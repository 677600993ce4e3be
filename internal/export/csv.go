package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/vmaerten/github-stats/internal/models"
)

// WriteCSV renders the per-person summary as delimited text. Raw numbers
// are written, not display strings, so the output stays machine-readable;
// absent metrics become empty cells.
func WriteCSV(w io.Writer, result *models.RepositoryStatistics) error {
	writer := csv.NewWriter(w)

	header := []string{
		"person", "prs_opened", "approved", "commented", "changes_requested",
		"total_reviews", "distinct_reviewed", "eligible_prs", "participation_rate",
		"avg_first_comment_ms", "median_first_comment_ms",
		"avg_first_review_ms", "median_first_review_ms",
		"avg_approval_ms", "median_approval_ms",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, person := range result.People {
		record := []string{
			person.Identity.String(),
			strconv.Itoa(person.PRsOpened),
			strconv.Itoa(person.Approved),
			strconv.Itoa(person.Commented),
			strconv.Itoa(person.ChangesRequested),
			strconv.Itoa(person.TotalReviews),
			strconv.Itoa(person.DistinctReviewed),
			strconv.Itoa(person.EligiblePRs),
			strconv.FormatFloat(person.ParticipationRate, 'f', 1, 64),
		}
		record = append(record, metricCells(person.TimeToFirstComment)...)
		record = append(record, metricCells(person.TimeToFirstReview)...)
		record = append(record, metricCells(person.TimeToApproval)...)

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDetailCSV renders every (person, PR) detail row.
func WriteDetailCSV(w io.Writer, result *models.RepositoryStatistics) error {
	writer := csv.NewWriter(w)

	header := []string{
		"person", "pr_number", "title", "author", "state", "review_status",
		"first_comment_ms", "first_review_ms", "time_open_ms", "reviewer_count",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, person := range result.People {
		for _, detail := range person.PRDetails {
			record := []string{
				person.Identity.String(),
				strconv.Itoa(detail.Number),
				detail.Title,
				detail.Author.String(),
				string(detail.State),
				string(detail.ReviewStatus),
				optionalMsCell(detail.FirstCommentMs),
				optionalMsCell(detail.FirstReviewMs),
				strconv.FormatInt(detail.TimeOpenMs, 10),
				strconv.Itoa(detail.ReviewerCount),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func metricCells(m *models.TimeMetrics) []string {
	if m == nil {
		return []string{"", ""}
	}
	return []string{
		strconv.FormatFloat(m.AverageMs, 'f', 0, 64),
		strconv.FormatFloat(m.MedianMs, 'f', 0, 64),
	}
}

func optionalMsCell(ms *int64) string {
	if ms == nil {
		return ""
	}
	return strconv.FormatInt(*ms, 10)
}
