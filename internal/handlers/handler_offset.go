package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/core/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// offsetMatchHandler handles the settlement reconciliation endpoints of
// one account: open items, unmatched settlements, and matcher runs.
type offsetMatchHandler struct {
	matcherService portssvc.OffsetMatcherSvcFacade
}

// newOffsetMatchHandler creates a new offsetMatchHandler.
func newOffsetMatchHandler(ms portssvc.OffsetMatcherSvcFacade) *offsetMatchHandler {
	return &offsetMatchHandler{
		matcherService: ms,
	}
}

// registerOffsetMatchRoutes registers the reconciliation routes under accounts.
func registerOffsetMatchRoutes(rg *gin.RouterGroup, matcherService portssvc.OffsetMatcherSvcFacade) {
	h := newOffsetMatchHandler(matcherService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/unapplied", h.listUnapplied)
		accounts.GET("/:accountID/unmatched-offsets", h.listUnmatchedOffsets)
		accounts.POST("/:accountID/offset-matches", h.runMatcher)
		accounts.POST("/:accountID/offset-matches/apply", h.applyMatches)
	}
}

func (h *offsetMatchHandler) respondMatcherError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, services.ErrAccountNotOffsettable):
		logger.Warn("Account does not track offsets")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Reconciliation operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation operation failed"})
	}
}

func (h *offsetMatchHandler) listUnapplied(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	items, err := h.matcherService.Unapplied(c.Request.Context(), accountID)
	if err != nil {
		h.respondMatcherError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostedLineItemResponses(items))
}

func (h *offsetMatchHandler) listUnmatchedOffsets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	items, err := h.matcherService.UnmatchedOffsets(c.Request.Context(), accountID)
	if err != nil {
		h.respondMatcherError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostedLineItemResponses(items))
}

func (h *offsetMatchHandler) runMatcher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to run offset matcher")

	run, err := h.matcherService.Run(c.Request.Context(), accountID)
	if err != nil {
		h.respondMatcherError(c, logger, err)
		return
	}

	logger.Info("Matcher run computed", slog.Int("pairs", len(run.Pairs)))
	c.JSON(http.StatusOK, dto.ToMatchRunResponse(run))
}

func (h *offsetMatchHandler) applyMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	opCtx, ok := middleware.GetOperationContext(c)
	if !ok {
		logger.Error("Operation context not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing acting user"})
		return
	}

	logger = logger.With(slog.String("acting_user_id", opCtx.ActingUserID), slog.String("account_id", accountID))
	logger.Info("Received request to apply offset matches")

	run, err := h.matcherService.Run(c.Request.Context(), accountID)
	if err != nil {
		h.respondMatcherError(c, logger, err)
		return
	}

	linked, err := h.matcherService.Commit(c.Request.Context(), opCtx, run)
	if err != nil {
		h.respondMatcherError(c, logger, err)
		return
	}

	logger.Info("Offset matches applied", slog.Int("linked", linked))
	c.JSON(http.StatusOK, dto.CommitMatchesResponse{Linked: linked})
}
