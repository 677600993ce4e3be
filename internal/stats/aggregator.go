package stats

import (
	"sort"
	"time"

	"github.com/vmaerten/github-stats/internal/models"
)

// Aggregator turns a repository's normalized activity into ranked
// per-person statistics. It is a pure, single-threaded transformation over
// already-fetched collections: no I/O, no retries, deterministic for a
// given input and clock.
type Aggregator struct {
	now func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// personAccumulator collects one contributor's numbers while the stages
// run. It is finalized into an immutable PersonStatistics at the end so
// half-built records never leak to callers.
type personAccumulator struct {
	identity         models.Identity
	prsOpened        int
	ownPRs           map[int]bool
	approved         int
	commented        int
	changesRequested int
	reviewedPRs      map[int]bool
	firstCommentMs   []int64
	firstReviewMs    []int64
	approvalMs       []int64
	stubs            map[int]*models.PersonPRDetail
}

func newPersonAccumulator(identity models.Identity) *personAccumulator {
	return &personAccumulator{
		identity:    identity,
		ownPRs:      make(map[int]bool),
		reviewedPRs: make(map[int]bool),
		stubs:       make(map[int]*models.PersonPRDetail),
	}
}

// Aggregate runs the full pass for one repository and window. A person who
// authored, reviewed, or commented on nothing never appears in the output;
// there is no universe of identities beyond observed activity.
func (a *Aggregator) Aggregate(repository string, windowStart, windowEnd time.Time, activity *models.RepositoryActivity) *models.RepositoryStatistics {
	people := make(map[models.Identity]*personAccumulator)

	a.seedAuthors(people, activity)
	a.foldReviews(people, activity)
	a.foldStrayComments(people, activity)

	now := a.now()
	reviewerCounts := countFormalReviewers(activity)
	ordered := orderedPullRequests(activity.PullRequests)

	results := make([]*models.PersonStatistics, 0, len(people))
	for _, acc := range people {
		results = append(results, a.finalize(acc, ordered, reviewerCounts, now))
	}
	rank(results)

	return &models.RepositoryStatistics{
		Repository:  repository,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		TotalPRs:    len(activity.PullRequests),
		People:      results,
	}
}

func (a *Aggregator) person(people map[models.Identity]*personAccumulator, identity models.Identity) *personAccumulator {
	acc, ok := people[identity]
	if !ok {
		acc = newPersonAccumulator(identity)
		people[identity] = acc
	}
	return acc
}

// seedAuthors ensures a record exists for every PR author and counts their
// opened PRs. Bot authors are dropped even though the fetch layer already
// filters them.
func (a *Aggregator) seedAuthors(people map[models.Identity]*personAccumulator, activity *models.RepositoryActivity) {
	for _, pr := range activity.PullRequests {
		if pr.Author.IsBot() {
			continue
		}
		acc := a.person(people, pr.Author)
		acc.prsOpened++
		acc.ownPRs[pr.Number] = true
	}
}

// foldReviews resolves each reviewer's final outcome per PR and the two
// request-anchored response times. Only the last-submitted review decides
// the outcome tally; only the first-ever request is the timing origin, so
// a re-request never resets the clock.
func (a *Aggregator) foldReviews(people map[models.Identity]*personAccumulator, activity *models.RepositoryActivity) {
	for _, pr := range activity.PullRequests {
		byReviewer := groupReviews(activity.ReviewsByPR[pr.Number])

		for reviewer, reviews := range byReviewer {
			acc := a.person(people, reviewer)
			acc.reviewedPRs[pr.Number] = true

			sort.SliceStable(reviews, func(i, j int) bool {
				return reviews[i].SubmittedAt.Before(reviews[j].SubmittedAt)
			})

			final := reviews[len(reviews)-1].State
			switch final {
			case models.ReviewApproved:
				acc.approved++
			case models.ReviewChangesRequested:
				acc.changesRequested++
			case models.ReviewCommented:
				acc.commented++
			}

			stub := &models.PersonPRDetail{ReviewStatus: statusForState(final)}

			if requestedAt, ok := firstRequestAt(activity.RequestsByPR[pr.Number], reviewer); ok {
				if first, ok := firstInteractionAt(reviews, activity.CommentsByPR[pr.Number], reviewer); ok {
					if delta := first.Sub(requestedAt).Milliseconds(); delta >= 0 {
						stub.FirstCommentMs = &delta
						acc.firstCommentMs = append(acc.firstCommentMs, delta)
					}
				}
				if formalAt, ok := firstFormalReviewAt(reviews); ok {
					if delta := formalAt.Sub(requestedAt).Milliseconds(); delta >= 0 {
						stub.FirstReviewMs = &delta
						acc.firstReviewMs = append(acc.firstReviewMs, delta)
						// Same formula feeds both fields today; both are
						// consumed downstream, so neither can be dropped.
						acc.approvalMs = append(acc.approvalMs, delta)
					}
				}
			}

			acc.stubs[pr.Number] = stub
		}
	}
}

// foldStrayComments records commented-only involvement for people who
// discussed a PR without ever submitting a review on it.
func (a *Aggregator) foldStrayComments(people map[models.Identity]*personAccumulator, activity *models.RepositoryActivity) {
	for _, pr := range activity.PullRequests {
		byCommenter := groupComments(activity.CommentsByPR[pr.Number])

		for commenter, comments := range byCommenter {
			acc := a.person(people, commenter)
			if _, reviewed := acc.stubs[pr.Number]; reviewed {
				continue
			}

			stub := &models.PersonPRDetail{ReviewStatus: models.StatusCommentedOnly}

			if requestedAt, ok := firstRequestAt(activity.RequestsByPR[pr.Number], commenter); ok {
				earliest := earliestCommentAt(comments)
				if delta := earliest.Sub(requestedAt).Milliseconds(); delta >= 0 {
					stub.FirstCommentMs = &delta
					acc.firstCommentMs = append(acc.firstCommentMs, delta)
				}
			}

			acc.stubs[pr.Number] = stub
		}
	}
}

// finalize materializes the full detail list (one row per window PR, in PR
// number order) and derives the summary numbers.
func (a *Aggregator) finalize(acc *personAccumulator, ordered []*models.PullRequest, reviewerCounts map[int]int, now time.Time) *models.PersonStatistics {
	details := make([]models.PersonPRDetail, 0, len(ordered))
	for _, pr := range ordered {
		detail := models.PersonPRDetail{ReviewStatus: models.StatusNotReviewed}
		if stub, ok := acc.stubs[pr.Number]; ok {
			detail = *stub
		}
		if acc.ownPRs[pr.Number] {
			detail.ReviewStatus = models.StatusOwnPR
		}

		detail.Number = pr.Number
		detail.Title = pr.Title
		detail.Author = pr.Author
		detail.State = pr.State
		detail.IsDraft = pr.IsDraft
		detail.HTMLURL = pr.HTMLURL
		detail.TimeOpenMs = pr.ClosedOrMergedAt(now).Sub(pr.ReadyForReviewAt).Milliseconds()
		detail.ReviewerCount = reviewerCounts[pr.Number]

		details = append(details, detail)
	}

	distinctReviewed := 0
	for number := range acc.reviewedPRs {
		if !acc.ownPRs[number] {
			distinctReviewed++
		}
	}

	eligible := len(ordered) - acc.prsOpened
	participation := 0.0
	if eligible > 0 {
		participation = float64(distinctReviewed) / float64(eligible) * 100
	}

	return &models.PersonStatistics{
		Identity:           acc.identity,
		PRsOpened:          acc.prsOpened,
		Approved:           acc.approved,
		Commented:          acc.commented,
		ChangesRequested:   acc.changesRequested,
		TotalReviews:       acc.approved + acc.commented + acc.changesRequested,
		DistinctReviewed:   distinctReviewed,
		EligiblePRs:        eligible,
		ParticipationRate:  participation,
		TimeToFirstComment: ReduceDurations(acc.firstCommentMs),
		TimeToFirstReview:  ReduceDurations(acc.firstReviewMs),
		TimeToApproval:     ReduceDurations(acc.approvalMs),
		PRDetails:          details,
	}
}

// rank orders people by PRs opened descending, identity ascending on ties.
func rank(people []*models.PersonStatistics) {
	sort.SliceStable(people, func(i, j int) bool {
		if people[i].PRsOpened != people[j].PRsOpened {
			return people[i].PRsOpened > people[j].PRsOpened
		}
		return people[i].Identity < people[j].Identity
	})
}

func statusForState(state models.ReviewState) models.ReviewStatus {
	switch state {
	case models.ReviewApproved:
		return models.StatusApproved
	case models.ReviewChangesRequested:
		return models.StatusChangesRequested
	default:
		return models.StatusCommented
	}
}

func groupReviews(reviews []*models.Review) map[models.Identity][]*models.Review {
	grouped := make(map[models.Identity][]*models.Review)
	for _, review := range reviews {
		if review.Reviewer.IsBot() {
			continue
		}
		grouped[review.Reviewer] = append(grouped[review.Reviewer], review)
	}
	return grouped
}

func groupComments(comments []*models.Comment) map[models.Identity][]*models.Comment {
	grouped := make(map[models.Identity][]*models.Comment)
	for _, comment := range comments {
		if comment.Commenter.IsBot() {
			continue
		}
		grouped[comment.Commenter] = append(grouped[comment.Commenter], comment)
	}
	return grouped
}

// firstRequestAt finds the earliest request timestamp for one reviewer on
// one PR. Later re-requests are ignored.
func firstRequestAt(requests []*models.ReviewRequest, reviewer models.Identity) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, request := range requests {
		if request.Reviewer != reviewer {
			continue
		}
		if !found || request.RequestedAt.Before(earliest) {
			earliest = request.RequestedAt
			found = true
		}
	}
	return earliest, found
}

// firstInteractionAt is the earliest of the reviewer's review submissions
// and their own comments on the PR, the origin of time-to-first-comment.
func firstInteractionAt(reviews []*models.Review, comments []*models.Comment, reviewer models.Identity) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, review := range reviews {
		if !found || review.SubmittedAt.Before(earliest) {
			earliest = review.SubmittedAt
			found = true
		}
	}
	for _, comment := range comments {
		if comment.Commenter != reviewer {
			continue
		}
		if !found || comment.CreatedAt.Before(earliest) {
			earliest = comment.CreatedAt
			found = true
		}
	}
	return earliest, found
}

// firstFormalReviewAt expects reviews already ordered by submission time.
func firstFormalReviewAt(reviews []*models.Review) (time.Time, bool) {
	for _, review := range reviews {
		if review.State.IsFormal() {
			return review.SubmittedAt, true
		}
	}
	return time.Time{}, false
}

func earliestCommentAt(comments []*models.Comment) time.Time {
	earliest := comments[0].CreatedAt
	for _, comment := range comments[1:] {
		if comment.CreatedAt.Before(earliest) {
			earliest = comment.CreatedAt
		}
	}
	return earliest
}

// countFormalReviewers counts, per PR, the distinct non-bot identities that
// submitted at least one approved or changes-requested review. The value is
// identical on every person's row for the same PR.
func countFormalReviewers(activity *models.RepositoryActivity) map[int]int {
	counts := make(map[int]int, len(activity.PullRequests))
	for _, pr := range activity.PullRequests {
		seen := make(map[models.Identity]bool)
		for _, review := range activity.ReviewsByPR[pr.Number] {
			if review.Reviewer.IsBot() || !review.State.IsFormal() {
				continue
			}
			seen[review.Reviewer] = true
		}
		counts[pr.Number] = len(seen)
	}
	return counts
}

func orderedPullRequests(prs []*models.PullRequest) []*models.PullRequest {
	ordered := make([]*models.PullRequest, len(prs))
	copy(ordered, prs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })
	return ordered
}
