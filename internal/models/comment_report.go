package models

// CommentThread is one PR's slice of a single user's discussion history,
// comments ordered by creation time.
type CommentThread struct {
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	HTMLURL  string     `json:"html_url"`
	Comments []*Comment `json:"comments"`
}

// UserCommentReport is the comment-extraction report for one user.
type UserCommentReport struct {
	Repository    string          `json:"repository"`
	User          Identity        `json:"user"`
	TotalComments int             `json:"total_comments"`
	Threads       []CommentThread `json:"threads"`
}
