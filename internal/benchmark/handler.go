package benchmark

import (
	"errors"
	"net/http"

	"github.com/CONFENGE/etp-express-sub002/internal/category"
	"github.com/CONFENGE/etp-express-sub002/internal/validation"

	"github.com/gin-gonic/gin"
)

var validate = validation.New(IsValidRegion)

type Handler struct {
	service    *Service
	aggregator *Aggregator
}

func NewHandler(service *Service, aggregator *Aggregator) *Handler {
	return &Handler{
		service:    service,
		aggregator: aggregator,
	}
}

//
// --------------------------------------------------
// GET /benchmarks
// --------------------------------------------------
//

func (h *Handler) List(c *gin.Context) {
	var req struct {
		CategoryID   string `form:"categoryId"`
		CategoryCode string `form:"categoryCode"`
		Region       string `form:"region" validate:"region"`
		OrgSize      string `form:"orgSize" validate:"omitempty,oneof=SMALL MEDIUM LARGE ALL"`
		Page         int    `form:"page" validate:"omitempty,min=1"`
		Limit        int    `form:"limit" validate:"omitempty,min=1,max=100"`
	}

	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Query(c.Request.Context(), Filter{
		CategoryID: req.CategoryID,
		Region:     req.Region,
		OrgSize:    req.OrgSize,
		Page:       req.Page,
		Limit:      req.Limit,
	}, req.CategoryCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

//
// --------------------------------------------------
// GET /benchmarks/:category
// --------------------------------------------------
//

func (h *Handler) GetByCategory(c *gin.Context) {
	b, err := h.service.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

//
// --------------------------------------------------
// GET /benchmarks/:category/regional
// --------------------------------------------------
//

func (h *Handler) GetRegionalBreakdown(c *gin.Context) {
	breakdown, err := h.service.GetRegionalBreakdown(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

//
// --------------------------------------------------
// GET /benchmarks/stats
// --------------------------------------------------
//

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

//
// --------------------------------------------------
// POST /admin/benchmarks/recalculate
// --------------------------------------------------
//

func (h *Handler) Recalculate(c *gin.Context) {
	var req struct {
		CategoryID    string `json:"categoryId"`
		Region        string `json:"region" validate:"region"`
		PeriodMonths  int    `json:"periodMonths" validate:"omitempty,min=1,max=120"`
		MinSampleSize int    `json:"minSampleSize" validate:"omitempty,min=1"`
	}

	// Empty body means a full default pass.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	written, err := h.aggregator.Calculate(c.Request.Context(), CalcOptions{
		CategoryID:    req.CategoryID,
		Region:        req.Region,
		PeriodMonths:  req.PeriodMonths,
		MinSampleSize: req.MinSampleSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "benchmarks recalculated"
	if written == 0 {
		message = "no benchmarks updated"
	}

	c.JSON(http.StatusOK, gin.H{
		"benchmarksUpdated": written,
		"message":           message,
	})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, category.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
