// Package queue defines the engagement events published to the message
// broker and the background consumer that records them. Publication is
// fire-and-forget: a broker outage never affects request handling.
package queue

// Engagement event types.
const (
	EventPostLiked      = "post.liked"
	EventPostUnliked    = "post.unliked"
	EventCommentCreated = "comment.created"
)

// EngagementEvent is emitted when a user likes, unlikes or comments on
// a post. It carries enough for downstream consumers to log or notify
// without querying the primary database.
type EngagementEvent struct {
	Type      string `json:"type"`
	PostID    uint64 `json:"post_id"`
	UserID    uint64 `json:"user_id"`
	CommentID uint64 `json:"comment_id,omitempty"`
	At        string `json:"at"`
}
