// controllers/loan_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_lending/app"
	"library_lending/rules"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// Borrow lends one edition to the logged-in reader.
func (lc *LoanController) Borrow(c *gin.Context) {
	readerID, ok := currentReaderID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	editionID := c.Param("id")
	if editionID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing edition id"})
		return
	}

	loan, err := lc.Loans.Borrow(c.Request.Context(), readerID, editionID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// BorrowMany lends a batch of editions in one request; all or nothing.
func (lc *LoanController) BorrowMany(c *gin.Context) {
	readerID, ok := currentReaderID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		EditionIDs []string `json:"editionIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	loans, err := lc.Loans.BorrowMany(c.Request.Context(), readerID, in.EditionIDs)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"items": loans})
}

// Extend adds days to one of the reader's own loans.
func (lc *LoanController) Extend(c *gin.Context) {
	readerID, ok := currentReaderID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Days int `json:"days" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	loanID := c.Param("loanId")
	if err := lc.requireOwnLoan(c, readerID, loanID); err != nil {
		return
	}

	ext, err := lc.Loans.Extend(c.Request.Context(), loanID, in.Days)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ext)
}

// Return closes one of the reader's own loans.
func (lc *LoanController) Return(c *gin.Context) {
	readerID, ok := currentReaderID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	loanID := c.Param("loanId")
	if err := lc.requireOwnLoan(c, readerID, loanID); err != nil {
		return
	}

	loan, err := lc.Loans.Return(c.Request.Context(), loanID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ListMine returns the reader's own history; ?status=open narrows to
// outstanding loans.
func (lc *LoanController) ListMine(c *gin.Context) {
	readerID, ok := currentReaderID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var (
		loans interface{}
		err   error
	)
	if c.Query("status") == "open" {
		loans, err = lc.Loans.ActiveLoansOf(c.Request.Context(), readerID)
	} else {
		loans, err = lc.Loans.LoansOf(c.Request.Context(), readerID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": loans})
}

// StaffBorrow lends an edition on behalf of any reader; staff only.
func (lc *LoanController) StaffBorrow(c *gin.Context) {
	var in struct {
		ReaderID  string `json:"readerId" binding:"required"`
		EditionID string `json:"editionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	loan, err := lc.Loans.Borrow(c.Request.Context(), in.ReaderID, in.EditionID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// StaffReturn closes any loan; staff only.
func (lc *LoanController) StaffReturn(c *gin.Context) {
	loan, err := lc.Loans.Return(c.Request.Context(), c.Param("loanId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ListOfReader returns any reader's history; staff only.
func (lc *LoanController) ListOfReader(c *gin.Context) {
	loans, err := lc.Loans.LoansOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": loans})
}

// requireOwnLoan rejects the request unless the loan belongs to the
// reader. Writes the response itself on failure.
func (lc *LoanController) requireOwnLoan(c *gin.Context, readerID, loanID string) error {
	loan, err := lc.Repo.LoanByID(c.Request.Context(), loanID)
	if err != nil {
		writeErr(c, err)
		return err
	}
	if loan.ReaderID != readerID {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return rules.ErrNotFound
	}
	return nil
}
