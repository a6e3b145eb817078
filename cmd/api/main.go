package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bryanwahyu/scamshield/internal/application"
	"github.com/bryanwahyu/scamshield/internal/application/calls"
	"github.com/bryanwahyu/scamshield/internal/config"
	"github.com/bryanwahyu/scamshield/internal/infra/ai/groq"
	"github.com/bryanwahyu/scamshield/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/scamshield/internal/infra/storage"
	"github.com/bryanwahyu/scamshield/internal/middleware"
)

func main() {
	// .env is optional; plain environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// init provider client; without a key it runs in the disabled state
	// (transcription degrades, classification fails per request)
	ai := groq.NewClient(groq.Options{
		APIKey:              cfg.Provider.APIKey,
		BaseURL:             cfg.Provider.BaseURL,
		TranscriptionModel:  cfg.Provider.TranscriptionModel,
		ClassificationModel: cfg.Provider.ClassificationModel,
		Timeout:             cfg.ProviderTimeout(),
	})
	if !ai.Enabled() {
		log.Println("GROQ_API_KEY missing: server will start, but AI analysis will fail")
	}

	// init service
	svc := &calls.Service{
		Transcriber: ai,
		Classifier:  ai,
		Clock:       application.SystemClock{},
	}

	// optional audio retention
	if cfg.Retention.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Retention.Endpoint,
			cfg.Retention.Region,
			cfg.Retention.BucketName,
			cfg.Retention.AccessKey,
			cfg.Retention.SecretKey,
			cfg.Retention.UseSSL,
		)
		if err != nil {
			log.Fatalf("retention store init error: %v", err)
		}
		svc.Retention = store
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	mux.Mount("/", httpserver.NewRouter(svc, httpserver.Options{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		MaxUploadBytes:  cfg.Upload.MaxBytes,
		TempDir:         cfg.Upload.TempDir,
		ProviderEnabled: ai.Enabled(),
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
		// uploads plus two sequential provider calls need generous timeouts
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
