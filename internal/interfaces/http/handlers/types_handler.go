package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// TypesHandler exposes the loaded atom type dictionary.
type TypesHandler struct {
	dict *atomtype.Dictionary
}

// NewTypesHandler wraps a loaded dictionary.
func NewTypesHandler(dict *atomtype.Dictionary) *TypesHandler {
	return &TypesHandler{dict: dict}
}

// List handles GET /api/v1/types?element=C.
func (h *TypesHandler) List(c *gin.Context) {
	var types []*atomtype.Type
	if element := c.Query("element"); element != "" {
		types = h.dict.ForSymbol(element)
	} else {
		types = h.dict.Types()
	}
	c.JSON(http.StatusOK, gin.H{"types": types, "count": len(types)})
}

// Get handles GET /api/v1/types/:name.
func (h *TypesHandler) Get(c *gin.Context) {
	t, ok := h.dict.Lookup(c.Param("name"))
	if !ok {
		respondError(c, errors.NotFound("atom type "+c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, t)
}
