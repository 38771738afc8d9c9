package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"plantgen-backend/cmd/optimizer-service/api"
	"plantgen-backend/cmd/optimizer-service/websocket"
	"plantgen-backend/internal/catalog"
	"plantgen-backend/internal/logging"
	"plantgen-backend/internal/metrics"
	"plantgen-backend/internal/optimizer"
)

func main() {
	logging.InitLogger()

	log.Info().Msg("starting layout optimizer service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://127.0.0.1:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "plantgen"
	}

	log.Info().Str("uri", mongoURI).Msg("connecting to mongo")
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer mongoClient.Disconnect(context.Background())

	var catalogProvider catalog.Provider = catalog.NewMongoProvider(mongoClient.Database(dbName))

	optimizerService := optimizer.NewService(catalogProvider)
	progressHub := websocket.NewHub()
	go progressHub.Run(ctx)

	optimizerHandler := api.NewOptimizerHandler(optimizerService, progressHub)
	healthHandler := api.NewHealthHandler()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware)
	r.Use(middleware.Recoverer)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/optimize/stream" {
				next.ServeHTTP(w, r)
				return
			}
			metrics.Middleware(next).ServeHTTP(w, r)
		})
	})

	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:5173"
		log.Info().Str("origins", corsOrigins).Msg("using default CORS origins for development")
	}
	allowedOrigins := strings.Split(corsOrigins, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			log.Fatal().Msg("wildcard (*) CORS origin is not allowed, specify exact origins")
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/optimize", optimizerHandler.Optimize)
		r.Get("/optimize/stream", optimizerHandler.Stream)
	})

	r.Get("/health", healthHandler.ServeHTTP)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info().Msg("shutting down layout optimizer service")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("port", port).Msg("layout optimizer service listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("layout optimizer service stopped")
}
