package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/daybookhq/bookkeeping_app/internal/core/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/handlers"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/daybookhq/bookkeeping_app/internal/platform/config"
	"github.com/daybookhq/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/daybookhq/bookkeeping_app/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "bookkeeping_backend",
		Short: "Double-entry bookkeeping backend",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCommand(logger))
	rootCmd.AddCommand(newMatchOffsetsCommand(logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, cfg.EnableDBCheck)
			if err != nil {
				return fmt.Errorf("failed to initialize database pool: %w", err)
			}
			defer database.ClosePgxPool(dbPool)
			logger.Info("Database connection pool established.")

			if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
				return err
			}

			repos := pgsql.NewRepositoryProvider(dbPool)
			container := services.NewServiceContainer(repos, services.ContainerConfig{
				CashAccountCodeBase: cfg.CashAccountCodeBase,
			})

			if cfg.IsProduction {
				gin.SetMode(gin.ReleaseMode)
			}

			r := gin.New()
			r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

			if err := r.SetTrustedProxies(nil); err != nil {
				return fmt.Errorf("failed to set trusted proxies: %w", err)
			}

			corsConfig := cors.DefaultConfig()
			if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
				corsConfig.AllowAllOrigins = true
			} else {
				corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
			}
			corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Acting-User")
			r.Use(cors.New(corsConfig))

			rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
			if err != nil {
				return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
			}
			r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

			handlers.RegisterCustomValidations()
			handlers.RegisterRoutes(r, container)

			logger.Info("Server starting", slog.String("port", cfg.Port))
			if err := r.Run(":" + cfg.Port); err != nil {
				return fmt.Errorf("server failed to run: %w", err)
			}
			return nil
		},
	}
}

// runMigrations applies all pending schema migrations. A separate
// database/sql connection is used; migrate has no pgxpool driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func newMatchOffsetsCommand(logger *slog.Logger) *cobra.Command {
	var accountID string
	var apply bool
	var actingUser string

	cmd := &cobra.Command{
		Use:   "match-offsets",
		Short: "Pair open receivable/payable items with unmatched settlements on one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, cfg.EnableDBCheck)
			if err != nil {
				return fmt.Errorf("failed to initialize database pool: %w", err)
			}
			defer database.ClosePgxPool(dbPool)

			repos := pgsql.NewRepositoryProvider(dbPool)
			container := services.NewServiceContainer(repos, services.ContainerConfig{
				CashAccountCodeBase: cfg.CashAccountCodeBase,
			})

			ctx := context.Background()
			run, err := container.OffsetMatch.Run(ctx, accountID)
			if err != nil {
				return fmt.Errorf("matcher run failed: %w", err)
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			out.SetIndent("", "  ")
			if err := out.Encode(dto.ToMatchRunResponse(run)); err != nil {
				return err
			}

			if !apply {
				return nil
			}

			opCtx := domain.NewOperationContext(actingUser, time.Now(), "en")
			linked, err := container.OffsetMatch.Commit(ctx, opCtx, run)
			if err != nil {
				return fmt.Errorf("failed to apply matches: %w", err)
			}
			logger.Info("Offset matches applied", slog.String("account_id", accountID), slog.Int("linked", linked))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID to reconcile")
	cmd.Flags().BoolVar(&apply, "apply", false, "persist the computed pairs")
	cmd.Flags().StringVar(&actingUser, "acting-user", "system", "user recorded on applied links")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
