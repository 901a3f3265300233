package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"newsdesk/global"
	"newsdesk/middlewares"
	"newsdesk/models"
)

func GetUsers(c *gin.Context) {
	var users []models.User
	if err := global.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ToggleAdmin flips the admin flag on a user.
func ToggleAdmin(c *gin.Context) {
	var user models.User
	if err := global.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.IsAdmin = !user.IsAdmin
	if err := global.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user together with their bookmarks and comments.
// Admins cannot delete their own account.
func DeleteUser(c *gin.Context) {
	currentID, _ := middlewares.CurrentUserID(c)
	if id, err := strconv.ParseUint(c.Param("id"), 10, 64); err == nil && uint(id) == currentID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete own account"})
		return
	}

	var user models.User
	if err := global.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	err := global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		// hard delete so the email can be registered again
		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// CreateArticle is the admin entry point for manual articles. Entries
// share the URL dedup key with feed ingestion.
func CreateArticle(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := upsertArticle(&article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateStatsCache()

	c.JSON(http.StatusCreated, article)
}

// DeleteArticle removes an article together with the bookmarks and
// comments that reference it.
func DeleteArticle(c *gin.Context) {
	var article models.Article
	if err := global.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	err := global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateStatsCache()

	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}
