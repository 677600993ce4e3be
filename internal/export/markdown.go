package export

import (
	"fmt"
	"io"

	"github.com/vmaerten/github-stats/internal/models"
)

// WriteMarkdown renders the narrative report: a summary table followed by a
// per-person section with response-time distributions.
func WriteMarkdown(w io.Writer, result *models.RepositoryStatistics) error {
	fmt.Fprintf(w, "# Review activity for %s\n\n", result.Repository)
	fmt.Fprintf(w, "%d pull requests between %s and %s.\n\n",
		result.TotalPRs,
		result.WindowStart.Format("2006-01-02"), result.WindowEnd.Format("2006-01-02"))

	fmt.Fprintln(w, "| Person | PRs | Approved | Commented | Changes | Participation |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, person := range result.People {
		fmt.Fprintf(w, "| %s | %d | %d | %d | %d | %s |\n",
			person.Identity, person.PRsOpened, person.Approved, person.Commented,
			person.ChangesRequested, formatPercent(person.ParticipationRate))
	}
	fmt.Fprintln(w)

	for _, person := range result.People {
		fmt.Fprintf(w, "## %s\n\n", person.Identity)
		fmt.Fprintf(w, "Opened %d PRs, reviewed %d of %d eligible (%s participation).\n\n",
			person.PRsOpened, person.DistinctReviewed, person.EligiblePRs,
			formatPercent(person.ParticipationRate))
		fmt.Fprintf(w, "- Time to first comment: %s\n", formatMetricsFull(person.TimeToFirstComment))
		fmt.Fprintf(w, "- Time to first review: %s\n", formatMetricsFull(person.TimeToFirstReview))
		fmt.Fprintf(w, "- Time to approval: %s\n\n", formatMetricsFull(person.TimeToApproval))

		fmt.Fprintln(w, "| PR | Title | Status | First comment | First review | Open for |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|")
		for _, detail := range person.PRDetails {
			fmt.Fprintf(w, "| [#%d](%s) | %s | %s | %s | %s | %s |\n",
				detail.Number, detail.HTMLURL, detail.Title,
				statusLabel(detail.ReviewStatus),
				formatOptionalMs(detail.FirstCommentMs),
				formatOptionalMs(detail.FirstReviewMs),
				formatMs(float64(detail.TimeOpenMs)))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// WriteCommentsMarkdown renders one user's conversation history.
func WriteCommentsMarkdown(w io.Writer, report *models.UserCommentReport) error {
	fmt.Fprintf(w, "# Comments by %s in %s\n\n", report.User, report.Repository)
	fmt.Fprintf(w, "%d comments across %d pull requests.\n\n", report.TotalComments, len(report.Threads))

	for _, thread := range report.Threads {
		fmt.Fprintf(w, "## [#%d](%s) %s\n\n", thread.Number, thread.HTMLURL, thread.Title)
		for _, comment := range thread.Comments {
			fmt.Fprintf(w, "- **%s**: %s\n", comment.CreatedAt.Format("2006-01-02 15:04"), comment.Body)
		}
		fmt.Fprintln(w)
	}

	return nil
}
