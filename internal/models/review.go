package models

import (
	"time"
)

// ReviewState is the outcome of a submitted review. Pending and dismissed
// reviews are dropped by the fetch layer before aggregation.
type ReviewState string

const (
	ReviewApproved         ReviewState = "approved"
	ReviewCommented        ReviewState = "commented"
	ReviewChangesRequested ReviewState = "changes_requested"
)

// IsFormal reports whether the review carries a formal verdict.
// Commented-type reviews do not count towards time-to-first-review.
func (s ReviewState) IsFormal() bool {
	return s == ReviewApproved || s == ReviewChangesRequested
}

// Review represents a submitted pull request review.
type Review struct {
	PullRequestNumber int         `json:"pull_request_number"`
	Reviewer          Identity    `json:"reviewer"`
	State             ReviewState `json:"state"`
	SubmittedAt       time.Time   `json:"submitted_at"`
}

// ReviewRequest records that a reviewer was asked to review a pull request.
// The same reviewer may be requested more than once on one PR; only the
// earliest request is used as the response-time origin.
type ReviewRequest struct {
	PullRequestNumber int       `json:"pull_request_number"`
	Reviewer          Identity  `json:"reviewer"`
	RequestedAt       time.Time `json:"requested_at"`
}

// Comment is non-review discussion on a pull request, either an issue
// comment or a review (diff) comment.
type Comment struct {
	PullRequestNumber int       `json:"pull_request_number"`
	Commenter         Identity  `json:"commenter"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"created_at"`
	HTMLURL           string    `json:"html_url"`
}
