package models

import (
	"time"
)

// ReviewStatus classifies one person's involvement with one pull request.
// The values are mutually exclusive and resolved in this priority order.
type ReviewStatus string

const (
	StatusOwnPR            ReviewStatus = "own_pr"
	StatusApproved         ReviewStatus = "approved"
	StatusChangesRequested ReviewStatus = "changes_requested"
	StatusCommented        ReviewStatus = "commented"      // a formal review of the commented type
	StatusCommentedOnly    ReviewStatus = "commented_only" // informal comments, no review submitted
	StatusNotReviewed      ReviewStatus = "not_reviewed"
)

// TimeMetrics summarizes a non-empty collection of millisecond durations.
// A nil *TimeMetrics means "no data" and must not be conflated with zeros.
type TimeMetrics struct {
	AverageMs float64 `json:"average_ms"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	MedianMs  float64 `json:"median_ms"`
}

// PersonPRDetail is one person's row for one pull request. Every person in
// the output carries exactly one detail per window PR, touched or not.
type PersonPRDetail struct {
	Number         int              `json:"number"`
	Title          string           `json:"title"`
	Author         Identity         `json:"author"`
	State          PullRequestState `json:"state"`
	IsDraft        bool             `json:"is_draft"`
	HTMLURL        string           `json:"html_url"`
	ReviewStatus   ReviewStatus     `json:"review_status"`
	FirstCommentMs *int64           `json:"first_comment_ms"` // nil when no request was recorded or the delta was negative
	FirstReviewMs  *int64           `json:"first_review_ms"`
	TimeOpenMs     int64            `json:"time_open_ms"`
	ReviewerCount  int              `json:"reviewer_count"`
}

// PersonStatistics is the aggregated record for one non-bot contributor.
type PersonStatistics struct {
	Identity           Identity         `json:"identity"`
	PRsOpened          int              `json:"prs_opened"`
	Approved           int              `json:"approved"`
	Commented          int              `json:"commented"`
	ChangesRequested   int              `json:"changes_requested"`
	TotalReviews       int              `json:"total_reviews"`
	DistinctReviewed   int              `json:"distinct_reviewed"`
	EligiblePRs        int              `json:"eligible_prs"`
	ParticipationRate  float64          `json:"participation_rate"`
	TimeToFirstComment *TimeMetrics     `json:"time_to_first_comment"`
	TimeToFirstReview  *TimeMetrics     `json:"time_to_first_review"`
	TimeToApproval     *TimeMetrics     `json:"time_to_approval"`
	PRDetails          []PersonPRDetail `json:"pr_details"`
}

// RepositoryStatistics bundles the ranked per-person results with the
// window they were computed over.
type RepositoryStatistics struct {
	Repository  string              `json:"repository"`
	WindowStart time.Time           `json:"window_start"`
	WindowEnd   time.Time           `json:"window_end"`
	TotalPRs    int                 `json:"total_prs"`
	People      []*PersonStatistics `json:"people"`
}
