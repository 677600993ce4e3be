package services

import (
	"sort"

	"github.com/vmaerten/github-stats/internal/models"
)

// CommentReportService builds the conversation-history report for one
// user: their comments grouped per PR, threads ordered by PR number.
type CommentReportService struct{}

func NewCommentReportService() *CommentReportService {
	return &CommentReportService{}
}

func (s *CommentReportService) ExtractUserComments(repository string, user models.Identity, activity *models.RepositoryActivity) *models.UserCommentReport {
	report := &models.UserCommentReport{
		Repository: repository,
		User:       user,
	}

	for _, pr := range prsByNumber(activity.PullRequests) {
		var comments []*models.Comment
		for _, comment := range activity.CommentsByPR[pr.Number] {
			if comment.Commenter == user {
				comments = append(comments, comment)
			}
		}
		if len(comments) == 0 {
			continue
		}

		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		})

		report.Threads = append(report.Threads, models.CommentThread{
			Number:   pr.Number,
			Title:    pr.Title,
			HTMLURL:  pr.HTMLURL,
			Comments: comments,
		})
		report.TotalComments += len(comments)
	}

	return report
}

func prsByNumber(prs []*models.PullRequest) []*models.PullRequest {
	ordered := make([]*models.PullRequest, len(prs))
	copy(ordered, prs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })
	return ordered
}
