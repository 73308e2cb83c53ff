package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "import-scenario-analyzer/docs"
	"import-scenario-analyzer/internal/api"
	"import-scenario-analyzer/internal/api/handler"
	"import-scenario-analyzer/internal/store"
	"import-scenario-analyzer/pkg/router"
)

// @title Import Scenario Analyzer API
// @version 1.0
// @description Ranks the landed cost of import scenarios from uploaded cost spreadsheets and branch cost simulations.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	dbPath := envOr("ANALYZER_DB", "analyzer.db")
	addr := envOr("ANALYZER_ADDR", ":8080")

	if err := store.InitDB(dbPath); err != nil {
		panic(err)
	}

	// Redis when configured, in-process cache otherwise
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		handler.SetRankingCache(store.NewRedisCache(redisAddr))
		fmt.Printf("📦 Ranking cache: redis at %s\n", redisAddr)
	} else {
		fmt.Println("📦 Ranking cache: in-memory")
	}

	limiter := api.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	r := router.New()
	r.Use(api.RateLimitUploads(limiter))
	api.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		fmt.Printf("🚀 Server starting on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("❌ Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("⏳ Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("❌ Forced shutdown: %v\n", err)
	}
	fmt.Println("👋 Server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
