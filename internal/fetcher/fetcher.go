package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"

	"github.com/vmaerten/github-stats/internal/models"
	"github.com/vmaerten/github-stats/pkg/logger"
)

// Fetcher retrieves one repository's pull request activity from the GitHub
// API and normalizes it for aggregation: draft PRs and bot authors are
// dropped, pending/dismissed reviews are dropped, review requests and
// ready-for-review transitions are pulled from the issue timeline.
type Fetcher struct {
	client *github.Client
	owner  string
	repo   string
}

func NewFetcher(client *github.Client, owner, repo string) *Fetcher {
	return &Fetcher{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// FetchActivity collects every record for PRs created inside the window.
func (f *Fetcher) FetchActivity(ctx context.Context, windowStart, windowEnd time.Time) (*models.RepositoryActivity, error) {
	pullRequests, err := f.fetchPullRequests(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests for %s/%s: %w", f.owner, f.repo, err)
	}

	activity := &models.RepositoryActivity{
		PullRequests: pullRequests,
		ReviewsByPR:  make(map[int][]*models.Review),
		RequestsByPR: make(map[int][]*models.ReviewRequest),
		CommentsByPR: make(map[int][]*models.Comment),
	}

	for _, pr := range pullRequests {
		reviews, err := f.fetchReviews(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reviews for PR #%d: %w", pr.Number, err)
		}
		activity.ReviewsByPR[pr.Number] = reviews

		requests, readyAt, err := f.fetchTimeline(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch timeline for PR #%d: %w", pr.Number, err)
		}
		activity.RequestsByPR[pr.Number] = requests
		if readyAt != nil && readyAt.After(pr.ReadyForReviewAt) {
			pr.ReadyForReviewAt = *readyAt
		}

		comments, err := f.fetchComments(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comments for PR #%d: %w", pr.Number, err)
		}
		activity.CommentsByPR[pr.Number] = comments
	}

	logger.WithFields(logrus.Fields{
		"repository": f.owner + "/" + f.repo,
		"prs":        len(pullRequests),
	}).Info("Fetched repository activity")

	return activity, nil
}

func (f *Fetcher) fetchPullRequests(ctx context.Context, windowStart, windowEnd time.Time) ([]*models.PullRequest, error) {
	var result []*models.PullRequest
	opts := &github.PullRequestListOptions{
		State:     "all",
		Sort:      "created",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for {
		prs, resp, err := f.client.PullRequests.List(ctx, f.owner, f.repo, opts)
		if err != nil {
			return nil, err
		}

		pastWindow := false
		for _, pr := range prs {
			createdAt := pr.GetCreatedAt().Time
			if createdAt.Before(windowStart) {
				// Listing is sorted by creation time descending, so
				// everything after this point predates the window.
				pastWindow = true
				break
			}
			if createdAt.After(windowEnd) {
				continue
			}
			if pr.GetDraft() {
				continue
			}
			author := models.Identity(pr.GetUser().GetLogin())
			if author.IsBot() {
				continue
			}
			result = append(result, normalizePullRequest(pr, author))
		}

		if pastWindow || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func normalizePullRequest(pr *github.PullRequest, author models.Identity) *models.PullRequest {
	createdAt := pr.GetCreatedAt().Time

	normalized := &models.PullRequest{
		Number:           pr.GetNumber(),
		Title:            pr.GetTitle(),
		Author:           author,
		State:            models.PullRequestOpen,
		IsDraft:          pr.GetDraft(),
		CreatedAt:        createdAt,
		ReadyForReviewAt: createdAt,
		HTMLURL:          pr.GetHTMLURL(),
	}

	if pr.ClosedAt != nil {
		normalized.ClosedAt = &pr.ClosedAt.Time
		normalized.State = models.PullRequestClosed
	}
	if pr.MergedAt != nil {
		normalized.MergedAt = &pr.MergedAt.Time
		normalized.State = models.PullRequestMerged
	}

	return normalized
}

func (f *Fetcher) fetchReviews(ctx context.Context, number int) ([]*models.Review, error) {
	var result []*models.Review
	opts := &github.ListOptions{
		PerPage: 100,
	}

	for {
		reviews, resp, err := f.client.PullRequests.ListReviews(ctx, f.owner, f.repo, number, opts)
		if err != nil {
			return nil, err
		}

		for _, review := range reviews {
			state, ok := mapReviewState(review.GetState())
			if !ok {
				continue
			}
			reviewer := models.Identity(review.GetUser().GetLogin())
			if reviewer.IsBot() {
				continue
			}
			if review.SubmittedAt == nil {
				continue
			}
			result = append(result, &models.Review{
				PullRequestNumber: number,
				Reviewer:          reviewer,
				State:             state,
				SubmittedAt:       review.SubmittedAt.Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// mapReviewState restricts review outcomes to the three values the
// aggregator accepts. Pending and dismissed reviews carry no verdict.
func mapReviewState(state string) (models.ReviewState, bool) {
	switch state {
	case "APPROVED":
		return models.ReviewApproved, true
	case "CHANGES_REQUESTED":
		return models.ReviewChangesRequested, true
	case "COMMENTED":
		return models.ReviewCommented, true
	default:
		return "", false
	}
}

// fetchTimeline extracts review_requested events and the latest
// ready_for_review transition from the issue timeline.
func (f *Fetcher) fetchTimeline(ctx context.Context, number int) ([]*models.ReviewRequest, *time.Time, error) {
	var requests []*models.ReviewRequest
	var readyAt *time.Time
	opts := &github.ListOptions{
		PerPage: 100,
	}

	for {
		events, resp, err := f.client.Issues.ListIssueTimeline(ctx, f.owner, f.repo, number, opts)
		if err != nil {
			return nil, nil, err
		}

		for _, event := range events {
			switch event.GetEvent() {
			case "review_requested":
				if event.Reviewer == nil || event.CreatedAt == nil {
					continue
				}
				reviewer := models.Identity(event.Reviewer.GetLogin())
				if reviewer.IsBot() {
					continue
				}
				requests = append(requests, &models.ReviewRequest{
					PullRequestNumber: number,
					Reviewer:          reviewer,
					RequestedAt:       event.CreatedAt.Time,
				})
			case "ready_for_review":
				if event.CreatedAt != nil {
					t := event.CreatedAt.Time
					readyAt = &t
				}
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return requests, readyAt, nil
}

// fetchComments merges issue comments and review (diff) comments; both are
// discussion for timing purposes.
func (f *Fetcher) fetchComments(ctx context.Context, number int) ([]*models.Comment, error) {
	var result []*models.Comment

	issueOpts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}
	for {
		comments, resp, err := f.client.Issues.ListComments(ctx, f.owner, f.repo, number, issueOpts)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			if normalized := normalizeComment(number, comment.GetUser().GetLogin(), comment.GetBody(), comment.GetHTMLURL(), comment.CreatedAt); normalized != nil {
				result = append(result, normalized)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		issueOpts.Page = resp.NextPage
	}

	reviewOpts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}
	for {
		comments, resp, err := f.client.PullRequests.ListComments(ctx, f.owner, f.repo, number, reviewOpts)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			if normalized := normalizeComment(number, comment.GetUser().GetLogin(), comment.GetBody(), comment.GetHTMLURL(), comment.CreatedAt); normalized != nil {
				result = append(result, normalized)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		reviewOpts.Page = resp.NextPage
	}

	return result, nil
}

func normalizeComment(number int, login, body, htmlURL string, createdAt *github.Timestamp) *models.Comment {
	commenter := models.Identity(login)
	if commenter.IsBot() || createdAt == nil {
		return nil
	}
	return &models.Comment{
		PullRequestNumber: number,
		Commenter:         commenter,
		Body:              body,
		CreatedAt:         createdAt.Time,
		HTMLURL:           htmlURL,
	}
}
