package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gigflow_backend/database"
	"gigflow_backend/internal/auth"
	"gigflow_backend/internal/config"
	"gigflow_backend/internal/handlers"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/middleware"
	"gigflow_backend/internal/routes"
	"gigflow_backend/internal/services"
	"gigflow_backend/internal/validator"
	"gigflow_backend/internal/workers"
	"gigflow_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// App is the wired application: router, notification bus and background
// workers sharing one database handle.
type App struct {
	Router          *gin.Engine
	Bus             *ws.Manager
	Services        *services.ServiceContainer
	Facade          *services.GigBidFacade
	RetentionWorker *workers.NotificationRetentionWorker
}

func Run(cfg *config.Config) error {
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm(cfg.Database.DSN, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			return err
		}
		logger.Info("Database schema auto-migrated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := New(cfg, gormDB)
	a.RetentionWorker.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Close live sessions first; hijacked websocket connections are not
	// tracked by http.Server.Shutdown.
	a.Bus.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	stop()
	a.RetentionWorker.Wait()

	logger.Info("Server stopped")
	return nil
}

// New wires services, handlers, the notification bus and the router.
func New(cfg *config.Config, gormDB *gorm.DB) *App {
	verifier := auth.NewTokenVerifier(cfg.JWT.Secret)

	bus := ws.NewManager(verifier, cfg.Realtime.SendBuffer)

	serviceContainer := services.NewServiceContainer(gormDB, bus, validator.New(), services.SystemClock)
	facade := services.NewGigBidFacade(serviceContainer, bus)

	appHandlers := handlers.NewAppHandlers(handlers.NewBaseHandler(verifier), facade)

	wsHandler := ws.NewWebSocketHandler(bus, ws.ClientConfig{
		WriteWait:  cfg.Realtime.WriteWait,
		PongWait:   cfg.Realtime.PongWait,
		PingPeriod: cfg.Realtime.PingPeriod,
		SendBuffer: cfg.Realtime.SendBuffer,
	}, cfg.Server.AllowedOrigins)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, gormDB)

	return &App{
		Router:   ginRouter,
		Bus:      bus,
		Services: serviceContainer,
		Facade:   facade,
		RetentionWorker: workers.NewNotificationRetentionWorker(
			serviceContainer.NotificationService,
			cfg.Notifications.RetentionDays,
			cfg.Notifications.CleanupInterval,
			services.SystemClock,
		),
	}
}

// SetupRouter returns just the HTTP handler of a wired App.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	return New(cfg, gormDB).Router
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	return router
}
