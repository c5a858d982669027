// controllers/book_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library_lending/app"
	"library_lending/models"
	"library_lending/services"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// Create catalogues a new book; staff only. The domain set is validated
// against the hierarchy before anything is persisted.
func (bc *BookController) Create(c *gin.Context) {
	var in struct {
		Title     string   `json:"title" binding:"required"`
		AuthorIDs []string `json:"authorIds"`
		DomainIDs []string `json:"domainIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	book, err := bc.Books.Add(c.Request.Context(), services.AddBookInput{
		Title:     in.Title,
		AuthorIDs: in.AuthorIDs,
		DomainIDs: in.DomainIDs,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (bc *BookController) List(c *gin.Context) {
	books, err := bc.Books.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": books})
}

func (bc *BookController) Get(c *gin.Context) {
	book, err := bc.Books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// ByDomain lists books under a domain, descendants included.
func (bc *BookController) ByDomain(c *gin.Context) {
	books, err := bc.Books.ByDomain(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": books})
}

// CreateEdition adds a print run of a book; staff only.
func (bc *BookController) CreateEdition(c *gin.Context) {
	var in struct {
		Publisher            string `json:"publisher" binding:"required"`
		Year                 int    `json:"year" binding:"required"`
		EditionNumber        string `json:"editionNumber"`
		PageCount            int    `json:"pageCount"`
		BookType             string `json:"bookType"`
		InitialStock         int    `json:"initialStock" binding:"required,min=1"`
		ReadingRoomOnlyCount int    `json:"readingRoomOnlyCount"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	edition, err := bc.Books.AddEdition(c.Request.Context(), services.AddEditionInput{
		BookID:               c.Param("id"),
		Publisher:            in.Publisher,
		Year:                 in.Year,
		EditionNumber:        in.EditionNumber,
		PageCount:            in.PageCount,
		BookType:             in.BookType,
		InitialStock:         in.InitialStock,
		ReadingRoomOnlyCount: in.ReadingRoomOnlyCount,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, edition)
}

// CreateAuthor registers an author; staff only.
func (bc *BookController) CreateAuthor(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Author{ID: uuid.NewString(), Name: in.Name}
	if err := bc.Repo.CreateAuthor(c.Request.Context(), a); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (bc *BookController) ListAuthors(c *gin.Context) {
	authors, err := bc.Repo.Authors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": authors})
}
