package models

// RepositoryActivity is the normalized fetch result handed to the
// aggregator: every record for one repository and window, already filtered
// of draft PRs, bot authors, and pending/dismissed reviews. The per-PR maps
// are keyed by pull request number.
type RepositoryActivity struct {
	PullRequests []*PullRequest           `json:"pull_requests"`
	ReviewsByPR  map[int][]*Review        `json:"reviews_by_pr"`
	RequestsByPR map[int][]*ReviewRequest `json:"requests_by_pr"`
	CommentsByPR map[int][]*Comment       `json:"comments_by_pr"`
}
