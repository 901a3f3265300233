package models

import "time"

// Bookmark rows are hard-deleted so the unique pair index never blocks
// re-bookmarking an article.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"uniqueIndex:idx_bookmark_user_article" json:"userId"`
	ArticleID uint      `gorm:"uniqueIndex:idx_bookmark_user_article" json:"articleId"`
}
