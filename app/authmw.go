package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_lending/db"
	"library_lending/session"
)

const SessionCookie = "lib_session"

// AuthRequired resolves the session cookie, confirms the reader still
// exists and puts readerID/isStaff into the request context.
func AuthRequired(sessions *session.Store, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(SessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		sess, err := sessions.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		reader, err := repo.ReaderByID(c.Request.Context(), sess.ReaderID)
		if err != nil {
			_ = sessions.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		c.Set("readerID", reader.ID)
		c.Set("isStaff", reader.IsLibraryStaff)
		c.Next()
	}
}

// StaffOnly gates administrative routes; runs after AuthRequired.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("isStaff")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if staff, _ := v.(bool); !staff {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
