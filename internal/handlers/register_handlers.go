package handlers

import (
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every v1 operation acts on behalf of an explicit user; the middleware
	// fills in who from the request headers.
	v1 := r.Group("/api/v1", middleware.OperationContextMiddleware(func() domain.OperationContext {
		return domain.NewOperationContext("", time.Now(), "en")
	}))

	registerAccountRoutes(v1, services.Account)
	registerCurrencyRoutes(v1, services.Currency)
	registerJournalEntryRoutes(v1, services.JournalEntry)
	registerSequenceRoutes(v1, services.Sequence)
	registerOffsetMatchRoutes(v1, services.OffsetMatch)
}
