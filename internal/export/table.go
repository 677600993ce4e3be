package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vmaerten/github-stats/internal/models"
)

// WriteTable renders the summary as an aligned console table.
// No table library is pulled in for this: tabwriter covers it.
func WriteTable(w io.Writer, result *models.RepositoryStatistics) error {
	fmt.Fprintf(w, "Repository %s — %d PRs between %s and %s\n\n",
		result.Repository, result.TotalPRs,
		result.WindowStart.Format("2006-01-02"), result.WindowEnd.Format("2006-01-02"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERSON\tPRS\tAPPROVED\tCOMMENTED\tCHANGES\tREVIEWS\tREVIEWED\tPARTICIPATION\tFIRST COMMENT\tFIRST REVIEW\tAPPROVAL")

	for _, person := range result.People {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			person.Identity,
			person.PRsOpened,
			person.Approved,
			person.Commented,
			person.ChangesRequested,
			person.TotalReviews,
			person.DistinctReviewed,
			formatPercent(person.ParticipationRate),
			formatMetrics(person.TimeToFirstComment),
			formatMetrics(person.TimeToFirstReview),
			formatMetrics(person.TimeToApproval),
		)
	}

	return tw.Flush()
}
