// controllers/domain_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_lending/app"
)

type DomainController struct{ *Srv }

func NewDomainController(s *Srv) *DomainController { return &DomainController{Srv: s} }

func (dc *DomainController) Create(c *gin.Context) {
	var in struct {
		Name     string  `json:"name" binding:"required"`
		ParentID *string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	d, err := dc.Domains.Create(c.Request.Context(), in.Name, in.ParentID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (dc *DomainController) List(c *gin.Context) {
	domains, err := dc.Domains.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": domains})
}

// Reparent moves a domain under a new parent; a nil parentId detaches it
// to the root. Moves that would close a cycle are refused.
func (dc *DomainController) Reparent(c *gin.Context) {
	var in struct {
		ParentID *string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	if err := dc.Domains.Reparent(c.Request.Context(), c.Param("id"), in.ParentID); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
