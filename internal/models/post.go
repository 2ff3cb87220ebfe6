package models

// Post mirrors an on-chain post. PostID is assigned by the ledger.
type Post struct {
	PostID          int64  `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	AuthorAddress   string `gorm:"not null;index:idx_posts_author" json:"author_address"`
	ContentHash     string `gorm:"not null" json:"content_hash"`
	ContentText     string `gorm:"type:text" json:"content_text"`
	MediaURLs       string `gorm:"column:media_urls;type:text" json:"media_urls"`
	TransactionHash string `gorm:"not null" json:"transaction_hash"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;index:idx_posts_created" json:"created_at"`
}

// PostView is a post enriched with author identity and live counters.
// Username and AvatarURL are nil when the author has no profile.
type PostView struct {
	Post
	Username     *string `json:"username"`
	AvatarURL    *string `json:"avatar_url"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
}

// Share links a re-post to its original. The new post is indexed separately.
type Share struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	OriginalPostID  int64  `gorm:"not null;index" json:"original_post_id"`
	NewPostID       int64  `gorm:"not null" json:"new_post_id"`
	UserAddress     string `gorm:"not null" json:"user_address"`
	TransactionHash string `json:"transaction_hash"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}
