package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/controllers"
	"newsdesk/global"
	"newsdesk/models"
	"newsdesk/services"
)

// stubFeed installs a fake upstream feed and returns a counter of how
// often it was hit.
func stubFeed(t *testing.T, payload string) *atomic.Int64 {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	}))
	t.Cleanup(srv.Close)

	controllers.SetNewsClient(services.NewNewsAPIClient("test-key", srv.URL))
	return &hits
}

const usFeedPayload = `{
	"status": "ok",
	"totalResults": 2,
	"articles": [
		{
			"title": "Fed holds rates",
			"description": "Central bank news",
			"url": "https://example.com/fed",
			"publishedAt": "2026-08-27T12:00:00Z",
			"source": {"name": "Example Wire"}
		},
		{
			"title": "[Removed]",
			"url": "https://example.com/gone",
			"publishedAt": "2026-08-27T11:00:00Z",
			"source": {"name": "Example Wire"}
		}
	]
}`

func TestGetNewsFillsOnMissOnce(t *testing.T) {
	r := setupServer(t)
	hits := stubFeed(t, usFeedPayload)

	w := doRequest(t, r, http.MethodGet, "/api/news?country=us", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	articles := body["articles"].([]interface{})
	require.Len(t, articles, 1, "tombstoned entries are not stored")
	first := articles[0].(map[string]interface{})
	assert.Equal(t, "Fed holds rates", first["title"])
	assert.Equal(t, "us", first["country"])
	assert.EqualValues(t, 1, hits.Load())

	// the second identical request is served from the store
	w = doRequest(t, r, http.MethodGet, "/api/news?country=us", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	require.Len(t, body["articles"].([]interface{}), 1)
	assert.EqualValues(t, 1, hits.Load(), "feed must not be re-invoked on a warm store")
}

func TestGetNewsFeedFailureDegradesToEmpty(t *testing.T) {
	r := setupServer(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	controllers.SetNewsClient(services.NewNewsAPIClient("test-key", srv.URL))

	w := doRequest(t, r, http.MethodGet, "/api/news?country=us", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, "upstream failures degrade, they do not fail the request")
	body := decodeBody(t, w)
	assert.Empty(t, body["articles"])
}

func TestGetNewsSkipsFeedBeyondFirstPage(t *testing.T) {
	r := setupServer(t)
	hits := stubFeed(t, usFeedPayload)

	w := doRequest(t, r, http.MethodGet, "/api/news?country=us&page=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, hits.Load(), "only an empty first page triggers the feed")
}

func TestGetNewsPagination(t *testing.T) {
	r := setupServer(t)

	for i := 0; i < 5; i++ {
		seedArticle(t, fmt.Sprintf("Article %d", i), fmt.Sprintf("https://example.com/a%d", i), "us", "general")
	}

	w := doRequest(t, r, http.MethodGet, "/api/news?country=us&limit=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["articles"].([]interface{}), 2)
	assert.Equal(t, true, body["hasMore"])

	w = doRequest(t, r, http.MethodGet, "/api/news?country=us&limit=2&page=3", nil, nil)
	body = decodeBody(t, w)
	assert.Len(t, body["articles"].([]interface{}), 1)
	assert.Equal(t, false, body["hasMore"])

	// category filter excludes everything seeded
	w = doRequest(t, r, http.MethodGet, "/api/news?country=us&category=sports", nil, nil)
	body = decodeBody(t, w)
	assert.Empty(t, body["articles"])
}

func TestSearchNewsRequiresQuery(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodGet, "/api/news/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchNewsMatchesStored(t *testing.T) {
	r := setupServer(t)

	seedArticle(t, "Quantum breakthrough announced", "https://example.com/quantum", "us", "science")
	seedArticle(t, "Football results", "https://example.com/football", "us", "sports")

	w := doRequest(t, r, http.MethodGet, "/api/news/search?q=QUANTUM", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	articles := body["articles"].([]interface{})
	require.Len(t, articles, 1, "matching is case-insensitive")
	assert.Equal(t, "Quantum breakthrough announced", articles[0].(map[string]interface{})["title"])
}

func TestSearchNewsFillsOnMiss(t *testing.T) {
	r := setupServer(t)
	hits := stubFeed(t, usFeedPayload)

	w := doRequest(t, r, http.MethodGet, "/api/news/search?q=fed", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Len(t, body["articles"].([]interface{}), 1)
	assert.EqualValues(t, 1, hits.Load())

	w = doRequest(t, r, http.MethodGet, "/api/news/search?q=fed", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, hits.Load())
}

func TestGetNewsByID(t *testing.T) {
	r := setupServer(t)
	article := seedArticle(t, "Single article", "https://example.com/single", "us", "general")

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/news/%d", article.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	got := body["article"].(map[string]interface{})
	assert.Equal(t, "Single article", got["title"])
	assert.EqualValues(t, 0, body["commentCount"])

	w = doRequest(t, r, http.MethodGet, "/api/news/99999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertDedupesByURL(t *testing.T) {
	r := setupServer(t)
	cookie := signupAndLogin(t, r, "admin@example.com", "pw-123456")
	makeAdmin(t, "admin@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/admin/articles", gin.H{
		"title":   "First title",
		"url":     "https://example.com/story",
		"source":  "Manual",
		"country": "us",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/api/admin/articles", gin.H{
		"title":   "Second title",
		"url":     "https://example.com/story",
		"source":  "Manual",
		"country": "us",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var articles []models.Article
	require.NoError(t, global.DB.Where("url = ?", "https://example.com/story").Find(&articles).Error)
	require.Len(t, articles, 1, "the URL is the dedup key")
	assert.Equal(t, "Second title", articles[0].Title, "re-ingestion overwrites scalar fields")
}
