package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/halver/timesheet/internal/config"
	"github.com/halver/timesheet/internal/handler"
	"github.com/halver/timesheet/internal/repository"
	"github.com/halver/timesheet/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected")

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)

	authSvc := service.NewAuthService(userRepo, service.AuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GitHubClientID:     cfg.GitHubClientID,
		GitHubClientSecret: cfg.GitHubClientSecret,
		JWTSecret:          cfg.JWTSecret,
		FrontendURL:        cfg.FrontendURL,
	})
	projectSvc := service.NewProjectService(projectRepo)
	entrySvc := service.NewTimeEntryService(entryRepo, projectRepo)
	exportSvc := service.NewExportService(projectRepo, entryRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	entryHandler := handler.NewTimeEntryHandler(entrySvc)
	exportHandler := handler.NewExportHandler(exportSvc, authSvc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewAppValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(handler.RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/github", authHandler.GitHubRedirect)
	auth.GET("/github/callback", authHandler.GitHubCallback)
	auth.POST("/refresh", authHandler.Refresh)

	protected := api.Group("", handler.JWTAuth(authSvc))
	protected.GET("/auth/me", authHandler.Me)

	protected.GET("/projects", projectHandler.List)
	protected.POST("/projects", projectHandler.Create)
	protected.DELETE("/projects/:projectID", projectHandler.Delete)
	protected.POST("/projects/:projectID/pin", projectHandler.Pin)
	protected.DELETE("/projects/:projectID/pin", projectHandler.Unpin)

	protected.GET("/projects/:projectID/entries", entryHandler.Feed)
	protected.POST("/projects/:projectID/entries/start", entryHandler.Start)
	protected.POST("/projects/:projectID/entries/stop", entryHandler.Stop)
	protected.PATCH("/entries/:entryID", entryHandler.Edit)
	protected.DELETE("/entries/:entryID", entryHandler.Delete)

	protected.GET("/projects/:projectID/export/csv", exportHandler.CSV)
	protected.GET("/projects/:projectID/export/csv-simple", exportHandler.CSVSimple)
	protected.GET("/projects/:projectID/export/pdf", exportHandler.PDF)

	// Legacy plain-text export route kept for existing clients; it performs
	// its own auth check so the parameter checks can run first.
	e.GET("/api/project/export", exportHandler.Raw)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
