package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"newsdesk/global"
	"newsdesk/models"
	"newsdesk/services"
)

const statsCacheKey = "stats:countries"
const statsCacheTTL = 10 * time.Minute

func GetCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": services.Countries()})
}

func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": services.Categories()})
}

type countryStat struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// GetCountryStats returns per-country article counts. The aggregate is
// cached in redis for 10 minutes; caching is best-effort and the query
// is served from the database when the cache is unavailable.
func GetCountryStats(c *gin.Context) {
	ctx := c.Request.Context()

	if global.RedisDB != nil {
		cached, err := global.RedisDB.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats []countryStat
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				c.JSON(http.StatusOK, gin.H{"stats": stats})
				return
			}
		} else if err != redis.Nil {
			logrus.Warnf("Failed to read stats cache: %v", err)
		}
	}

	var stats []countryStat
	err := global.DB.Model(&models.Article{}).
		Select("articles.country AS country, count(*) AS count").
		Group("articles.country").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if global.RedisDB != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := global.RedisDB.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				logrus.Warnf("Failed to write stats cache: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// invalidateStatsCache drops the cached aggregate after article writes.
// Runs off the request path like the other cache invalidations.
func invalidateStatsCache() {
	if global.RedisDB == nil {
		return
	}
	go func() {
		_ = global.RedisDB.Del(context.Background(), statsCacheKey).Err()
	}()
}
