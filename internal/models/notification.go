package models

// NotificationType identifies the action that produced a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationTip     NotificationType = "tip"
	NotificationShare   NotificationType = "share"
)

// Notification is an inbox entry for UserAddress caused by FromAddress.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserAddress string           `gorm:"not null;index:idx_notifications_user" json:"user_address"`
	Type        NotificationType `gorm:"not null;size:16" json:"type"`
	FromAddress string           `gorm:"not null" json:"from_address"`
	PostID      *int64           `json:"post_id"`
	CommentID   *int64           `json:"comment_id"`
	Message     string           `json:"message"`
	IsRead      bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   int64            `gorm:"autoCreateTime:milli;index:idx_notifications_created" json:"created_at"`
}

// NotificationView is a notification with the actor's identity.
type NotificationView struct {
	Notification
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}
