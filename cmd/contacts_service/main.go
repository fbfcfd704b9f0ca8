package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	apimiddleware "github.com/netpc/contacts-api/internal/api/middleware"
	httptransport "github.com/netpc/contacts-api/internal/api/transport/http"
	contactsapp "github.com/netpc/contacts-api/internal/contacts/app"
	contactsrepo "github.com/netpc/contacts-api/internal/contacts/repository/postgres"
	identityapp "github.com/netpc/contacts-api/internal/identity/app"
	identitydomain "github.com/netpc/contacts-api/internal/identity/domain"
	identityrepo "github.com/netpc/contacts-api/internal/identity/repository/postgres"
	"github.com/netpc/contacts-api/internal/migrations"
	"github.com/netpc/contacts-api/internal/platform/config"
	"github.com/netpc/contacts-api/internal/platform/database"
	"github.com/netpc/contacts-api/internal/platform/hashing"
	"github.com/netpc/contacts-api/internal/platform/logger"
	"github.com/netpc/contacts-api/internal/platform/messagebroker"
)

const serviceName = "contacts_service"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Contacts service starting...", "port", cfg.ServerPort)

	ctx := context.Background()

	dbPool, err := database.NewDBPool(ctx, cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Connected to PostgreSQL database")

	if err := migrations.Run(ctx, cfg.PostgresDSN); err != nil {
		appLogger.Error("Failed to apply database migrations", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Database migrations applied")

	// NATS is optional; the service stays up without event publishing.
	var publisher contactsapp.EventPublisher
	natsClient, err := messagebroker.NewNatsClient(cfg.NATSUrl, serviceName, appLogger)
	if err != nil {
		appLogger.Warn("NATS unavailable, contact events will not be published", "error", err)
	} else {
		defer natsClient.Close()
		publisher = natsClient
		appLogger.Info("Connected to NATS")
	}

	hasher := hashing.NewBcryptHasher()

	contactRepo := contactsrepo.NewPgContactRepository(dbPool, appLogger)
	categoryRepo := contactsrepo.NewPgCategoryRepository(dbPool, appLogger)
	subcategoryRepo := contactsrepo.NewPgSubcategoryRepository(dbPool, appLogger)
	contactsApp := contactsapp.NewApplication(contactRepo, categoryRepo, subcategoryRepo, hasher, publisher, appLogger)

	accountRepo := identityrepo.NewPgAccountRepository(dbPool, appLogger)
	refreshTokenRepo := identityrepo.NewPgRefreshTokenRepository(dbPool, appLogger)
	authService := identityapp.NewAuthService(accountRepo, refreshTokenRepo, hasher, identityapp.AuthConfig{
		JWTAccessSecret:    cfg.JWTAccessSecret,
		AccessTokenExpiry:  time.Duration(cfg.JWTAccessExpiryMin) * time.Minute,
		RefreshTokenExpiry: time.Duration(cfg.RefreshExpiryHours) * time.Hour,
	}, appLogger)

	if cfg.BootstrapAccountEmail != "" && cfg.BootstrapAccountPassword != "" {
		if _, err := authService.Register(ctx, cfg.BootstrapAccountEmail, cfg.BootstrapAccountPassword); err != nil {
			if !errors.Is(err, identitydomain.ErrEmailExists) {
				appLogger.Error("Failed to bootstrap account", "error", err)
				os.Exit(1)
			}
		} else {
			appLogger.Info("Bootstrap account created", "email", cfg.BootstrapAccountEmail)
		}
	}

	validate := httptransport.NewValidator()
	contactHandler := httptransport.NewContactHandler(contactsApp, appLogger, validate)
	authHandler := httptransport.NewAuthHandler(authService, appLogger, validate)
	authMW := apimiddleware.AuthMiddleware(authService, appLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(httptransport.PrometheusMetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Group(func(auth chi.Router) {
			auth.Use(httprate.LimitByIP(cfg.RateLimitAuthPerMin, time.Minute))
			authHandler.RegisterRoutes(auth)
		})

		api.Group(func(queries chi.Router) {
			queries.Use(httprate.LimitByIP(cfg.RateLimitQueriesPerMin, time.Minute))
			contactHandler.RegisterQueryRoutes(queries)
		})

		api.Group(func(commands chi.Router) {
			commands.Use(httprate.LimitByIP(cfg.RateLimitCommandsPerMin, time.Minute))
			commands.Use(authMW)
			contactHandler.RegisterCommandRoutes(commands)
		})
	})

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: r}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info(fmt.Sprintf("HTTP server listening on port %d", cfg.ServerPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		quitChan := make(chan os.Signal, 1)
		signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quitChan:
			appLogger.Info("Shutdown signal received", "signal", sig.String())
		case <-gCtx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Service terminated with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Contacts service shut down gracefully.")
}
