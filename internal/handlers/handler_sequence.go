package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sequenceHandler handles manual reordering of a date's entries.
type sequenceHandler struct {
	sequenceService portssvc.SequenceSvcFacade
}

// newSequenceHandler creates a new sequenceHandler.
func newSequenceHandler(ss portssvc.SequenceSvcFacade) *sequenceHandler {
	return &sequenceHandler{
		sequenceService: ss,
	}
}

// registerSequenceRoutes registers the date ordering routes.
func registerSequenceRoutes(rg *gin.RouterGroup, sequenceService portssvc.SequenceSvcFacade) {
	h := newSequenceHandler(sequenceService)

	dates := rg.Group("/dates")
	{
		dates.PUT("/:date/order", h.reorderDate)
	}
}

func (h *sequenceHandler) reorderDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be a YYYY-MM-DD date"})
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReorderDate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opCtx, ok := middleware.GetOperationContext(c)
	if !ok {
		logger.Error("Operation context not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing acting user"})
		return
	}

	logger = logger.With(slog.String("acting_user_id", opCtx.ActingUserID), slog.String("date", date.Format("2006-01-02")))
	logger.Info("Received request to reorder entries", slog.Int("rank_count", len(req.RankByID)))

	modified, err := h.sequenceService.Reorder(c.Request.Context(), opCtx, date, req.RankByID)
	if err != nil {
		logger.Error("Failed to reorder entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder entries"})
		return
	}

	logger.Info("Reorder applied", slog.Bool("modified", modified))
	c.JSON(http.StatusOK, dto.ReorderResponse{Modified: modified})
}
