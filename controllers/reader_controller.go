// controllers/reader_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_lending/app"
	"library_lending/services"
)

type ReaderController struct{ *Srv }

func NewReaderController(s *Srv) *ReaderController { return &ReaderController{Srv: s} }

// Register creates a reader; staff only. A reader joining an account that
// already has a staff member becomes staff too.
func (rc *ReaderController) Register(c *gin.Context) {
	var in struct {
		FirstName      string `json:"firstName" binding:"required"`
		LastName       string `json:"lastName" binding:"required"`
		Address        string `json:"address"`
		Phone          string `json:"phone"`
		Email          string `json:"email"`
		Password       string `json:"password" binding:"required,min=8"`
		IsLibraryStaff bool   `json:"isLibraryStaff"`
		AccountID      string `json:"accountId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	reader, err := rc.Readers.Register(c.Request.Context(), services.RegisterReaderInput{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Password:       in.Password,
		IsLibraryStaff: in.IsLibraryStaff,
		AccountID:      in.AccountID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reader)
}

func (rc *ReaderController) List(c *gin.Context) {
	readers, err := rc.Readers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": readers})
}

// Get returns one reader together with their open loans.
func (rc *ReaderController) Get(c *gin.Context) {
	id := c.Param("id")
	reader, err := rc.Readers.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	active, err := rc.Loans.ActiveLoansOf(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"reader": reader, "activeLoans": active})
}
