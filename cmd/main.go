// @title MeetSync Backend API
// @version 1.0
// @description MeetSync Backend API for meeting scheduling

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	_ "MEETSYNC_BACK-END/docs" // This is required for swagger
	"MEETSYNC_BACK-END/internal/config"
	"MEETSYNC_BACK-END/internal/handlers"
	"MEETSYNC_BACK-END/internal/logger"
	"MEETSYNC_BACK-END/internal/middleware"
	"MEETSYNC_BACK-END/internal/repository"
	"MEETSYNC_BACK-END/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Setup(&cfg.Logging); err != nil {
		log.Fatalf("logger: %v", err)
	}

	// Connection pool
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "meetsync-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Fail fast when the store is unreachable rather than serve degraded traffic
	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	meetingRepo := repository.NewMeetingRepository(pool)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	meetingsHandler := handlers.NewMeetingsHandler(meetingRepo)
	healthHandler := handlers.NewHealthHandler(pool)
	googleAuthHandler := handlers.NewGoogleAuthHandler(userRepo, cfg)

	// Setup all routes
	routes.SetupRoutes(cfg, authHandler, meetingsHandler, healthHandler, googleAuthHandler)

	// CORS + metrics around the default mux
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	handler := c.Handler(middleware.MetricsMiddleware(http.DefaultServeMux))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
