package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"newsdesk/global"
	"newsdesk/middlewares"
	"newsdesk/models"
)

func GetBookmarks(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rows []models.ArticleWithCount
	err := global.DB.Model(&models.Bookmark{}).
		Select("articles.*, count(DISTINCT comments.id) AS comment_count").
		Joins("JOIN articles ON articles.id = bookmarks.article_id AND articles.deleted_at IS NULL").
		Joins("LEFT JOIN comments ON comments.article_id = articles.id AND comments.deleted_at IS NULL").
		Where("bookmarks.user_id = ?", userID).
		Group("articles.id, bookmarks.id").
		Order("bookmarks.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": rows})
}

type bookmarkInput struct {
	ArticleID uint `json:"articleId" binding:"required"`
}

func AddBookmark(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input bookmarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var article models.Article
	if err := global.DB.First(&article, input.ArticleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	var count int64
	if err := global.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND article_id = ?", userID, input.ArticleID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "article already bookmarked"})
		return
	}

	bookmark := models.Bookmark{UserID: userID, ArticleID: input.ArticleID}
	if err := global.DB.Create(&bookmark).Error; err != nil {
		// two racing requests can both pass the pre-check; the unique
		// index turns the loser into a conflict
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "article already bookmarked"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

func CheckBookmark(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var count int64
	if err := global.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND article_id = ?", userID, c.Param("articleId")).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": count > 0})
}

func RemoveBookmark(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := global.DB.
		Where("user_id = ? AND article_id = ?", userID, c.Param("articleId")).
		Delete(&models.Bookmark{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bookmark removed"})
}
