package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmaerten/github-stats/internal/models"
)

func TestExtractUserComments(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	activity := &models.RepositoryActivity{
		PullRequests: []*models.PullRequest{
			{Number: 2, Title: "second", Author: "bob"},
			{Number: 1, Title: "first", Author: "alice"},
			{Number: 3, Title: "third", Author: "alice"},
		},
		CommentsByPR: map[int][]*models.Comment{
			1: {
				{PullRequestNumber: 1, Commenter: "carol", Body: "later", CreatedAt: base.Add(2 * time.Hour)},
				{PullRequestNumber: 1, Commenter: "carol", Body: "earlier", CreatedAt: base},
				{PullRequestNumber: 1, Commenter: "alice", Body: "not carol", CreatedAt: base},
			},
			2: {
				{PullRequestNumber: 2, Commenter: "carol", Body: "only one", CreatedAt: base},
			},
		},
	}

	report := NewCommentReportService().ExtractUserComments("acme/widgets", "carol", activity)

	assert.Equal(t, "acme/widgets", report.Repository)
	assert.Equal(t, models.Identity("carol"), report.User)
	assert.Equal(t, 3, report.TotalComments)
	require.Len(t, report.Threads, 2, "PRs without carol's comments are skipped")

	// Threads come out ordered by PR number, comments by time.
	assert.Equal(t, 1, report.Threads[0].Number)
	assert.Equal(t, "earlier", report.Threads[0].Comments[0].Body)
	assert.Equal(t, "later", report.Threads[0].Comments[1].Body)
	assert.Equal(t, 2, report.Threads[1].Number)
}

func TestExtractUserCommentsNoActivity(t *testing.T) {
	activity := &models.RepositoryActivity{
		PullRequests: []*models.PullRequest{{Number: 1, Title: "first", Author: "alice"}},
		CommentsByPR: map[int][]*models.Comment{},
	}

	report := NewCommentReportService().ExtractUserComments("acme/widgets", "carol", activity)

	assert.Equal(t, 0, report.TotalComments)
	assert.Empty(t, report.Threads)
}

func TestWindow(t *testing.T) {
	t.Run("Valid period", func(t *testing.T) {
		start, end, err := Window(30)
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, end.Sub(start))
	})

	t.Run("Non-positive period", func(t *testing.T) {
		_, _, err := Window(0)
		assert.Error(t, err)
	})
}
