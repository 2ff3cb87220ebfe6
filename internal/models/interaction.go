package models

// Like is unique per (post, user).
type Like struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	PostID          int64  `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserAddress     string `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_address"`
	TransactionHash string `json:"transaction_hash"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

// Comment mirrors an on-chain comment. CommentID is assigned by the ledger.
type Comment struct {
	CommentID       int64  `gorm:"primaryKey;autoIncrement:false" json:"comment_id"`
	PostID          int64  `gorm:"not null;index:idx_comments_post" json:"post_id"`
	UserAddress     string `gorm:"not null" json:"user_address"`
	CommentHash     string `json:"comment_hash"`
	CommentText     string `gorm:"type:text" json:"comment_text"`
	TransactionHash string `json:"transaction_hash"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

// CommentView is a comment with the commenter's identity.
type CommentView struct {
	Comment
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Follow is unique per (follower, following). Self-follows are stored as-is.
type Follow struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	FollowerAddress  string `gorm:"not null;uniqueIndex:idx_follows_pair;index:idx_follows_follower" json:"follower_address"`
	FollowingAddress string `gorm:"not null;uniqueIndex:idx_follows_pair;index:idx_follows_following" json:"following_address"`
	TransactionHash  string `json:"transaction_hash"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

// Tip is append-only. Amount keeps the exact decimal string that was submitted.
type Tip struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	FromAddress     string `gorm:"not null" json:"from_address"`
	ToAddress       string `gorm:"not null;index:idx_tips_to" json:"to_address"`
	Amount          string `gorm:"not null" json:"amount"`
	TransactionHash string `json:"transaction_hash"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

// TipView is a tip with the sender's identity.
type TipView struct {
	Tip
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}
