package middleware

import (
	"net/http"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const opCtxKey = contextKey("operationContext")

// actingUserHeader carries the identity established by the upstream
// gateway; authentication itself is an external collaborator.
const actingUserHeader = "X-Acting-User"

// OperationContextMiddleware builds the explicit per-request operation
// context (acting user, request date, locale) consumed by every mutating
// core operation, and rejects requests with no acting user.
func OperationContextMiddleware(clock func() domain.OperationContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		opCtx := clock()
		opCtx.ActingUserID = c.GetHeader(actingUserHeader)
		if locale := c.GetHeader("Accept-Language"); locale != "" {
			opCtx.Locale = locale
		}

		if opCtx.ActingUserID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + actingUserHeader + " header"})
			return
		}

		c.Set(string(opCtxKey), opCtx)
		c.Next()
	}
}

// GetOperationContext retrieves the operation context set by
// OperationContextMiddleware. The second return is false when the
// middleware did not run.
func GetOperationContext(c *gin.Context) (domain.OperationContext, bool) {
	val, exists := c.Get(string(opCtxKey))
	if !exists {
		return domain.OperationContext{}, false
	}
	opCtx, ok := val.(domain.OperationContext)
	return opCtx, ok
}
