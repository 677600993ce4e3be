package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vmaerten/github-stats/internal/models"
)

const (
	summarySheet = "Summary"
	detailSheet  = "PR Details"
)

// BuildWorkbook renders the statistics as a two-sheet spreadsheet: one
// summary row per person, one detail row per (person, PR) pair. The caller
// owns the returned file and is responsible for closing it.
func BuildWorkbook(result *models.RepositoryStatistics) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, result); err != nil {
		return nil, err
	}
	if err := writeDetailSheet(f, result); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSummarySheet(f *excelize.File, result *models.RepositoryStatistics) error {
	header := []interface{}{
		"Person", "PRs opened", "Approved", "Commented", "Changes requested",
		"Total reviews", "Distinct reviewed", "Eligible PRs", "Participation %",
		"Avg first comment", "Avg first review", "Avg approval",
	}
	if err := setRow(f, summarySheet, 1, header); err != nil {
		return err
	}

	for i, person := range result.People {
		row := []interface{}{
			person.Identity.String(),
			person.PRsOpened,
			person.Approved,
			person.Commented,
			person.ChangesRequested,
			person.TotalReviews,
			person.DistinctReviewed,
			person.EligiblePRs,
			person.ParticipationRate,
			formatMetrics(person.TimeToFirstComment),
			formatMetrics(person.TimeToFirstReview),
			formatMetrics(person.TimeToApproval),
		}
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func writeDetailSheet(f *excelize.File, result *models.RepositoryStatistics) error {
	header := []interface{}{
		"Person", "PR", "Title", "Author", "State", "Review status",
		"First comment", "First review", "Time open", "Reviewers",
	}
	if err := setRow(f, detailSheet, 1, header); err != nil {
		return err
	}

	rowIndex := 2
	for _, person := range result.People {
		for _, detail := range person.PRDetails {
			row := []interface{}{
				person.Identity.String(),
				detail.Number,
				detail.Title,
				detail.Author.String(),
				string(detail.State),
				statusLabel(detail.ReviewStatus),
				formatOptionalMs(detail.FirstCommentMs),
				formatOptionalMs(detail.FirstReviewMs),
				formatMs(float64(detail.TimeOpenMs)),
				detail.ReviewerCount,
			}
			if err := setRow(f, detailSheet, rowIndex, row); err != nil {
				return err
			}
			rowIndex++
		}
	}

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
