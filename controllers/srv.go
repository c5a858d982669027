// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"library_lending/app"
	"library_lending/db"
	"library_lending/rules"
	"library_lending/services"
	"library_lending/session"
)

type Srv struct {
	Repo    *db.Repo
	Sess    *session.Store
	Loans   *services.LoanService
	Books   *services.BookService
	Readers *services.ReaderService
	Domains *services.DomainService
	Cfg     app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:    repo,
		Sess:    a.Sessions(),
		Loans:   services.NewLoanService(repo, repo, repo, repo, a.Settings, nil),
		Books:   services.NewBookService(repo, repo, a.Settings),
		Readers: services.NewReaderService(repo),
		Domains: services.NewDomainService(repo),
		Cfg:     a.Config,
	}
}

// --- helpers ---

func (s *Srv) setSessionCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	age := int(maxAge / time.Second)
	if maxAge < 0 {
		age = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     app.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   age,
	})
}

func currentReaderID(c *gin.Context) (string, bool) {
	v, ok := c.Get("readerID")
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}

// writeErr maps domain errors to HTTP statuses: unknown entities to 404,
// rule violations and state conflicts to 409, everything else to 500.
func writeErr(c *gin.Context, err error) {
	var ruleErr *rules.LoanRuleViolationError
	var stockErr *rules.InsufficientStockError
	var domCount *rules.DomainConstraintError
	var domHier *rules.DomainHierarchyError

	switch {
	case errors.Is(err, rules.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, rules.ErrAlreadyReturned),
		errors.Is(err, rules.ErrDomainCycle),
		errors.As(err, &stockErr),
		errors.As(err, &domCount),
		errors.As(err, &domHier):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.As(err, &ruleErr):
		c.JSON(http.StatusConflict, app.H{"error": ruleErr.Message, "rule": ruleErr.Rule})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
