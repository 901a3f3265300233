package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"newsdesk/controllers"
	"newsdesk/global"
	"newsdesk/models"
	"newsdesk/router"
)

// setupServer wires the full router against a fresh in-memory database.
// The news client defaults to nil, so reads never reach out unless a
// test installs a stub feed.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Article{},
		&models.Bookmark{},
		&models.Comment{},
	))

	global.DB = db
	global.RedisDB = nil
	controllers.SetNewsClient(nil)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return router.InitRouter()
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signupAndLogin registers a user and returns the session cookie from a
// successful login.
func signupAndLogin(t *testing.T, r *gin.Engine, email, password string) *http.Cookie {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login response did not set a sid cookie")
	return nil
}

func makeAdmin(t *testing.T, email string) {
	t.Helper()
	err := global.DB.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true).Error
	require.NoError(t, err)
}

func seedArticle(t *testing.T, title, url, country, category string) models.Article {
	t.Helper()
	publishedAt := time.Now().UTC()
	article := models.Article{
		Title:       title,
		URL:         url,
		Source:      "seed",
		PublishedAt: &publishedAt,
		Country:     country,
		Category:    category,
	}
	require.NoError(t, global.DB.Create(&article).Error)
	return article
}
