// controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library_lending/app"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	reader, err := ac.Readers.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	id := uuid.NewString()
	if err := ac.Sess.Create(c.Request.Context(), id, reader.ID, reader.IsLibraryStaff); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ac.setSessionCookie(c.Writer, id, ac.Cfg.SessionTTL)
	c.JSON(http.StatusOK, reader)
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.SessionCookie); err == nil && ck.Value != "" {
		_ = ac.Sess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setSessionCookie(c.Writer, "", -1)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ac *AuthController) Whoami(c *gin.Context) {
	readerID, ok := currentReaderID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	reader, err := ac.Readers.Get(c.Request.Context(), readerID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reader)
}
