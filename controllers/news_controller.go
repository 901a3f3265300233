package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsdesk/global"
	"newsdesk/models"
	"newsdesk/services"
)

var newsClient *services.NewsAPIClient

// SetNewsClient wires the external feed client used for
// cache-fill-on-miss. Called once at startup.
func SetNewsClient(client *services.NewsAPIClient) {
	newsClient = client
}

func parsePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// articleQuery builds the base listing query: articles joined with
// live comments for the per-article count.
func articleQuery() *gorm.DB {
	return global.DB.Model(&models.Article{}).
		Select("articles.*, count(DISTINCT comments.id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.article_id = articles.id AND comments.deleted_at IS NULL").
		Group("articles.id")
}

func listArticles(country, category string, limit, offset int) ([]models.ArticleWithCount, error) {
	q := articleQuery()
	if country != "" {
		q = q.Where("articles.country = ?", country)
	}
	if category != "" {
		q = q.Where("articles.category = ?", category)
	}

	var rows []models.ArticleWithCount
	err := q.Order("articles.published_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

func searchStoredArticles(query, country string) ([]models.ArticleWithCount, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := articleQuery().
		Where("(LOWER(articles.title) LIKE ? OR LOWER(articles.description) LIKE ?)", pattern, pattern)
	if country != "" {
		q = q.Where("articles.country = ?", country)
	}

	var rows []models.ArticleWithCount
	err := q.Order("articles.published_at DESC").Limit(20).Scan(&rows).Error
	return rows, err
}

// upsertArticle inserts an article or, when its URL is already stored,
// overwrites the scalar fields in place. The unique url column is the
// dedup key, so concurrent fills of the same feed converge on one row.
func upsertArticle(article *models.Article) error {
	if article.PublishedAt == nil {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}
	return global.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "content", "url_to_image",
			"source", "author", "published_at", "country", "category", "updated_at",
		}),
	}).Create(article).Error
}

func storeFeedArticles(items []services.NewsAPIArticle, country, category string) {
	if country == "" {
		country = "global"
	}
	if category == "" {
		category = "general"
	}
	for _, item := range items {
		publishedAt := item.PublishedAt
		article := models.Article{
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.URL,
			URLToImage:  item.URLToImage,
			Source:      item.Source.Name,
			Author:      item.Author,
			PublishedAt: &publishedAt,
			Country:     country,
			Category:    category,
		}
		if err := upsertArticle(&article); err != nil {
			logrus.Warnf("Failed to store feed article %q: %v", item.URL, err)
		}
	}
	invalidateStatsCache()
}

// GetNews lists stored articles for an optional country/category
// filter. An empty first page falls back to the external feed, stores
// the result and re-reads; feed failures degrade to an empty page.
func GetNews(c *gin.Context) {
	country := c.Query("country")
	category := c.Query("category")
	page := parsePositive(c.DefaultQuery("page", "1"), 1)
	limit := parsePositive(c.DefaultQuery("limit", "20"), 20)
	offset := (page - 1) * limit

	articles, err := listArticles(country, category, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(articles) == 0 && page == 1 && newsClient != nil {
		items, err := newsClient.FetchTopHeadlines(c.Request.Context(), country, category, limit)
		if err != nil {
			logrus.Warnf("Failed to fetch from news feed: %v", err)
		} else {
			storeFeedArticles(items, country, category)
			articles, err = listArticles(country, category, limit, offset)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"hasMore":  len(articles) == limit,
	})
}

// SearchNews matches the query against stored titles and descriptions,
// falling back to the external search endpoint when nothing matches.
func SearchNews(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}
	country := c.Query("country")

	articles, err := searchStoredArticles(query, country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(articles) == 0 && newsClient != nil {
		items, err := newsClient.SearchNews(c.Request.Context(), query, country)
		if err != nil {
			logrus.Warnf("Failed to search news feed: %v", err)
		} else {
			storeFeedArticles(items, country, "general")
			articles, err = searchStoredArticles(query, country)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func GetNewsByID(c *gin.Context) {
	id := c.Param("id")

	var article models.Article
	if err := global.DB.Where("id = ?", id).First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	var comments []models.Comment
	if err := global.DB.Preload("User").
		Where("article_id = ?", article.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var bookmarks []models.Bookmark
	if err := global.DB.Where("article_id = ?", article.ID).Find(&bookmarks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":      article,
		"comments":     comments,
		"bookmarks":    bookmarks,
		"commentCount": len(comments),
	})
}
