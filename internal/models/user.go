// Package models contains the indexed social entities and their read views.
package models

// User is a wallet-keyed profile. Address is immutable once created.
type User struct {
	Address     string `gorm:"primaryKey;size:128" json:"address"`
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	ProfileHash string `json:"profile_hash"`
	Bio         string `gorm:"type:text" json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	HeaderURL   string `json:"header_url"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;index" json:"created_at"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

// ProfileStats is computed on every read and never cached.
type ProfileStats struct {
	Posts        int64  `json:"posts"`
	Followers    int64  `json:"followers"`
	Following    int64  `json:"following"`
	TipsReceived int64  `json:"tips_received"`
	TotalTipsETH string `json:"total_tips_eth"`
}

// Profile is a user together with live stats.
type Profile struct {
	User
	Stats ProfileStats `json:"stats"`
}

// TrendingUser is a user ranked by follower count.
type TrendingUser struct {
	User
	FollowerCount int64 `json:"follower_count"`
}
