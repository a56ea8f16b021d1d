// Battleships Game API
// @title Battleships API
// @version 1.0
// @description Two-player turn-based Battleship. Callers are identified by the X-User-Email header set by the gateway.
// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "battleships/docs"
	"battleships/internal/config"
	"battleships/internal/database"
	"battleships/internal/game"
	"battleships/internal/handlers"
	"battleships/internal/middleware"
	"battleships/internal/reminder"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()
	log.Printf("🗃️  Database ready at %s", db.Path())

	service := game.NewService(db)
	sweeper := reminder.NewSweeper(service, reminder.LogNotifier{}, cfg.ReminderAfter, cfg.AutoCancelAfter)
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal("Failed to create scheduler:", err)
	}
	if _, err := sweeper.Schedule(sched, cfg.ReminderEvery); err != nil {
		log.Fatal("Failed to schedule reminder sweep:", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			if n := limiter.Cleanup(time.Now()); n > 0 {
				log.Printf("[RateLimit] Dropped %d idle visitors", n)
			}
		}),
		gocron.WithName("rate-limit-cleanup"),
	)
	if err != nil {
		log.Fatal("Failed to schedule rate limiter cleanup:", err)
	}
	sched.Start()

	// Initialize Gin router
	r := gin.Default()

	// Configure trusted proxies for the gateway in front of us
	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.IdentityHeader, "X-Admin-Key"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.HTTPMethodFilter(http.MethodGet, http.MethodPost, http.MethodOptions))
	r.Use(middleware.RateLimitMiddleware(limiter))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes := handlers.Handlers{
		Users:    handlers.NewUserHandler(service),
		Games:    handlers.NewGameHandler(service),
		Admin:    handlers.NewAdminHandler(sweeper, db),
		AdminKey: cfg.AdminKey,
	}
	routes.Register(r)

	if cfg.AdminKey == "" {
		log.Println("⚠️  ADMIN_KEY not set, /api/admin routes are disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚢 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server shutdown: %v", err)
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("[ERROR] Scheduler shutdown: %v", err)
	}
	log.Println("👋 Server stopped")
}
