package models

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	gorm.Model
	Title       string     `binding:"required" json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	URL         string     `gorm:"uniqueIndex" binding:"required" json:"url"`
	URLToImage  string     `json:"urlToImage"`
	Source      string     `gorm:"index" json:"source"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	Country     string     `gorm:"index" json:"country"`
	Category    string     `gorm:"index" json:"category"`
}

// ArticleWithCount is the read shape for article listings: the article
// row plus its aggregated comment count.
type ArticleWithCount struct {
	Article
	CommentCount int64 `json:"commentCount"`
}
