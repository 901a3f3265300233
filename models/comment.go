package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	UserID    uint   `gorm:"index" json:"userId"`
	ArticleID uint   `gorm:"index" json:"articleId"`
	Content   string `binding:"required" json:"content"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
}
