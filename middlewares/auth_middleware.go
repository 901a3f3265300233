package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdesk/global"
	"newsdesk/models"
	"newsdesk/services"
)

// SessionCookie is the name of the HTTP-only cookie carrying the
// session id.
const SessionCookie = "sid"

const userIDKey = "auth.userID"

// AuthRequired resolves the session cookie to a user id and attaches it
// to the request context. It is the single auth middleware for every
// protected route.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		session, err := services.GetSession(sid)
		if err != nil {
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(userIDKey, session.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id attached by
// AuthRequired. The second result is false on unauthenticated requests.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// AdminRequired rejects authenticated users without the admin flag.
// It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := global.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
