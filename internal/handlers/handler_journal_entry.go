package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/core/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests for journal entries and
// their line items.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
}

// newJournalEntryHandler creates a new journalEntryHandler.
func newJournalEntryHandler(es portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{
		entryService: es,
	}
}

// registerJournalEntryRoutes registers routes related to journal entries.
func registerJournalEntryRoutes(rg *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}

	lineItems := rg.Group("/line-items")
	{
		lineItems.GET("/:lineItemID/net-balance", h.getNetBalance)
	}
}

// submissionRejections are the entry submission failures reported to the
// caller as their own fault rather than a server error.
var submissionRejections = []error{
	services.ErrEntryUnbalanced,
	services.ErrAccountInactive,
	services.ErrAccountCodeInvalid,
	services.ErrCashAccountMissing,
	services.ErrCurrencyUnknown,
	services.ErrOriginalNotFound,
	services.ErrOffsetOfOffset,
	services.ErrNotNeedOffsetAccount,
	services.ErrOffsetCurrencyMismatch,
	services.ErrOffsetSideInvalid,
	services.ErrOffsetSameEntry,
	services.ErrNetBalanceExceeded,
	services.ErrAmountBelowSettled,
	services.ErrOriginalLocked,
	services.ErrDatePrecedesOriginal,
	services.ErrOffsetPrecedesOriginal,
	services.ErrDateFollowsOffset,
	services.ErrImplicitSideRows,
	apperrors.ErrValidation,
}

func isSubmissionRejection(err error) bool {
	for _, target := range submissionRejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *journalEntryHandler) respondEntryError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case isSubmissionRejection(err):
		logger.Warn("Journal entry rejected", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Journal entry not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, services.ErrEntryHasOffsets):
		logger.Warn("Journal entry still referenced by offsets", slog.String("action", action))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Journal entry operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " journal entry"})
	}
}

func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opCtx, ok := middleware.GetOperationContext(c)
	if !ok {
		logger.Error("Operation context not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing acting user"})
		return
	}

	logger = logger.With(slog.String("acting_user_id", opCtx.ActingUserID))
	logger.Info("Received request to create journal entry", slog.String("kind", string(req.Kind)))

	entry, err := h.entryService.CreateEntry(c.Request.Context(), opCtx, req)
	if err != nil {
		h.respondEntryError(c, logger, err, "create")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int("no", entry.No))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.SaveJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opCtx, ok := middleware.GetOperationContext(c)
	if !ok {
		logger.Error("Operation context not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing acting user"})
		return
	}

	logger = logger.With(slog.String("acting_user_id", opCtx.ActingUserID), slog.String("entry_id", entryID))
	logger.Info("Received request to update journal entry")

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), opCtx, entryID, req)
	if err != nil {
		h.respondEntryError(c, logger, err, "update")
		return
	}

	logger.Info("Journal entry updated", slog.Int("no", entry.No))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	opCtx, ok := middleware.GetOperationContext(c)
	if !ok {
		logger.Error("Operation context not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing acting user"})
		return
	}

	logger = logger.With(slog.String("acting_user_id", opCtx.ActingUserID), slog.String("entry_id", entryID))
	logger.Info("Received request to delete journal entry")

	if err := h.entryService.DeleteEntry(c.Request.Context(), opCtx, entryID); err != nil {
		h.respondEntryError(c, logger, err, "delete")
		return
	}

	logger.Info("Journal entry deleted")
	c.Status(http.StatusNoContent)
}

func (h *journalEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		h.respondEntryError(c, logger, err, "retrieve")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a YYYY-MM-DD date"})
			return
		}
		from = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a YYYY-MM-DD date"})
			return
		}
		to = &parsed
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if v := c.Query("nextToken"); v != "" {
		nextToken = &v
	}

	entries, token, err := h.entryService.ListEntries(c.Request.Context(), from, to, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{Entries: responses, NextToken: token})
}

func (h *journalEntryHandler) getNetBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lineItemID := c.Param("lineItemID")

	net, err := h.entryService.NetBalance(c.Request.Context(), lineItemID, nil, nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, services.ErrOriginalNotFound) {
			logger.Warn("Line item not found", slog.String("line_item_id", lineItemID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Line item not found"})
		} else {
			logger.Error("Failed to compute net balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.NetBalanceResponse{LineItemID: lineItemID, NetBalance: net})
}
