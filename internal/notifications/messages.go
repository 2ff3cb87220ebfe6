// Package notifications derives inbox entries from social mutations and
// pushes them to connected clients.
package notifications

import (
	"fmt"
	"unicode/utf8"

	"aurasocial/internal/models"
)

// commentPreviewLen is the number of characters of a comment quoted in its notification.
const commentPreviewLen = 30

// Event describes one notification to fan out.
type Event struct {
	Recipient string
	Actor     string
	Type      models.NotificationType
	PostID    *int64
	CommentID *int64
	Message   string
}

// LikeEvent notifies a post author of a like.
func LikeEvent(author, liker string, postID int64) Event {
	return Event{
		Recipient: author,
		Actor:     liker,
		Type:      models.NotificationLike,
		PostID:    &postID,
		Message:   "liked your post",
	}
}

// CommentEvent notifies a post author of a comment.
func CommentEvent(author, commenter string, postID, commentID int64, text string) Event {
	return Event{
		Recipient: author,
		Actor:     commenter,
		Type:      models.NotificationComment,
		PostID:    &postID,
		CommentID: &commentID,
		Message:   `commented: "` + PreviewComment(text) + `"`,
	}
}

// FollowEvent notifies the followed address.
func FollowEvent(following, follower string) Event {
	return Event{
		Recipient: following,
		Actor:     follower,
		Type:      models.NotificationFollow,
		Message:   "started following you",
	}
}

// TipEvent notifies the tip recipient. amount is quoted verbatim.
func TipEvent(to, from, amount string) Event {
	return Event{
		Recipient: to,
		Actor:     from,
		Type:      models.NotificationTip,
		Message:   fmt.Sprintf("sent you %s ETH 💰", amount),
	}
}

// ShareEvent notifies the original post author of a share.
func ShareEvent(author, sharer string, originalPostID int64) Event {
	return Event{
		Recipient: author,
		Actor:     sharer,
		Type:      models.NotificationShare,
		PostID:    &originalPostID,
		Message:   "shared your post",
	}
}

// PreviewComment returns text unchanged when it fits, otherwise its first
// 30 characters followed by "...".
func PreviewComment(text string) string {
	if utf8.RuneCountInString(text) <= commentPreviewLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:commentPreviewLen]) + "..."
}
