package models

import (
	"time"
)

// PullRequestState is the lifecycle state of a pull request.
// Merged takes precedence over closed, closed over open.
type PullRequestState string

const (
	PullRequestOpen   PullRequestState = "open"
	PullRequestClosed PullRequestState = "closed"
	PullRequestMerged PullRequestState = "merged"
)

// PullRequest represents a GitHub pull request inside the reporting window.
// Records are owned by the fetch layer and read-only to the aggregator.
type PullRequest struct {
	Number           int              `json:"number"`
	Title            string           `json:"title"`
	Author           Identity         `json:"author"`
	State            PullRequestState `json:"state"`
	IsDraft          bool             `json:"is_draft"`
	CreatedAt        time.Time        `json:"created_at"`
	ReadyForReviewAt time.Time        `json:"ready_for_review_at"` // defaults to CreatedAt, moved forward by a ready_for_review event
	ClosedAt         *time.Time       `json:"closed_at"`
	MergedAt         *time.Time       `json:"merged_at"`
	HTMLURL          string           `json:"html_url"`
}

// ClosedOrMergedAt returns the time the PR stopped being open, or now for
// still-open PRs. Used as the end point of the time-open measurement.
func (pr *PullRequest) ClosedOrMergedAt(now time.Time) time.Time {
	if pr.MergedAt != nil {
		return *pr.MergedAt
	}
	if pr.ClosedAt != nil {
		return *pr.ClosedAt
	}
	return now
}
