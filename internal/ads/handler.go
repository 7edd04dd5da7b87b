package ads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/community-platform/backend/internal/middleware"
	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/response"
)

// Handler handles the public ad rotation and tracking endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an ads handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// GetAds handles GET /api/get-ads. Deliberately uncached so every call
// re-samples the rotation. Errors degrade to an empty list.
func (h *Handler) GetAds(c *gin.Context) {
	list, err := h.repo.SampleActive(c.Request.Context())
	if err != nil {
		h.logger.Error("get ads", zap.Error(err))
		c.JSON(http.StatusOK, []models.AdPublic{})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Impression handles POST /ad/impression/:id.
func (h *Handler) Impression(c *gin.Context) {
	err := h.repo.IncrementImpressions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.trackingError(c, "impression", err)
		return
	}
	response.OK(c, nil)
}

// Click handles POST /ad/click/:id: counter increment plus an append-only
// click event carrying the optional viewer identity and client address.
// The two writes are not atomic; a crash in between loses at most one record.
func (h *Handler) Click(c *gin.Context) {
	adID := c.Param("id")
	err := h.repo.IncrementClicks(c.Request.Context(), adID)
	if err != nil {
		h.trackingError(c, "click", err)
		return
	}
	if err := h.repo.RecordClick(c.Request.Context(), adID, middleware.UserID(c), c.ClientIP()); err != nil {
		h.trackingError(c, "click event", err)
		return
	}
	response.OK(c, nil)
}

func (h *Handler) trackingError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		response.BadRequest(c, "invalid ad ID")
	case errors.Is(err, models.ErrNotFound):
		response.NotFound(c, "ad not found")
	default:
		h.logger.Error("ad "+op, zap.Error(err))
		response.Internal(c, "server error")
	}
}
