package comparison

import (
	"errors"
	"net/http"

	"github.com/CONFENGE/etp-express-sub002/internal/benchmark"
	"github.com/CONFENGE/etp-express-sub002/internal/category"
	"github.com/CONFENGE/etp-express-sub002/internal/validation"

	"github.com/gin-gonic/gin"
)

var validate = validation.New(benchmark.IsValidRegion)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

//
// --------------------------------------------------
// GET /compare
// --------------------------------------------------
//

func (h *Handler) Compare(c *gin.Context) {
	var req struct {
		Price        float64 `form:"price" validate:"required,gt=0"`
		CategoryID   string  `form:"categoryId"`
		CategoryCode string  `form:"categoryCode"`
		Region       string  `form:"region" validate:"required,len=2,region"`
		OrgSize      string  `form:"orgSize" validate:"omitempty,oneof=SMALL MEDIUM LARGE ALL"`
	}

	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	idOrCode := req.CategoryID
	if idOrCode == "" {
		idOrCode = req.CategoryCode
	}
	if idOrCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId or categoryCode required"})
		return
	}

	result, err := h.engine.Compare(
		c.Request.Context(),
		req.Price,
		idOrCode,
		req.Region,
		req.OrgSize,
	)
	if err != nil {
		if errors.Is(err, benchmark.ErrNotFound) || errors.Is(err, category.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
