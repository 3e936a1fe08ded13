package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"

	"github.com/opennvr/console/internal/config"
	camerashandler "github.com/opennvr/console/internal/http-server/handlers/cameras"
	groupshandler "github.com/opennvr/console/internal/http-server/handlers/groups"
	recordingshandler "github.com/opennvr/console/internal/http-server/handlers/recordings"
	storagehandler "github.com/opennvr/console/internal/http-server/handlers/storage"
	mwlogger "github.com/opennvr/console/internal/http-server/middleware/logger"
	"github.com/opennvr/console/internal/lib/sl"
	cameraservice "github.com/opennvr/console/internal/services/cameras"
	groupservice "github.com/opennvr/console/internal/services/groups"
	recordingservice "github.com/opennvr/console/internal/services/recordings"
	"github.com/opennvr/console/internal/services/segments"
	storageservice "github.com/opennvr/console/internal/services/storage"
	"github.com/opennvr/console/internal/storage/postgres"
	camerastorage "github.com/opennvr/console/internal/storage/postgres/cameras"
	groupstorage "github.com/opennvr/console/internal/storage/postgres/groups"
	configstorage "github.com/opennvr/console/internal/storage/postgres/storageconfigs"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting opennvr console", slog.String("env", cfg.Env))

	cfg.DB.Password = os.Getenv("POSTGRES_PASSWORD")
	if cfg.DB.Password == "" {
		panic("POSTGRES_PASSWORD is required")
	}

	db, err := postgres.New(cfg.DB)
	if err != nil {
		panic(err)
	}

	cameraStorage := camerastorage.New(db)
	groupStorage := groupstorage.New(db)
	configStorage := configstorage.New(db)

	cameraService := cameraservice.New(log, cameraStorage, groupStorage)
	groupService := groupservice.New(log, groupStorage)
	recordingService := recordingservice.New(log, cameraStorage, segments.New())
	storageService := storageservice.New(log, configStorage)

	cameraHandler := camerashandler.New(log, cameraService)
	groupHandler := groupshandler.New(log, groupService)
	recordingHandler := recordingshandler.New(log, recordingService)
	storageHandler := storagehandler.New(log, storageService)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/cameras", func(r chi.Router) {
			r.Get("/", cameraHandler.Cameras)
			r.Post("/", cameraHandler.SaveCamera)
			r.Put("/{id}", cameraHandler.UpdateCamera)
			r.Delete("/{id}", cameraHandler.DeleteCamera)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.Groups)
			r.Post("/", groupHandler.SaveGroup)
			r.Delete("/{name}", groupHandler.DeleteGroup)
		})

		r.Get("/recordings/{cameraID}", recordingHandler.CameraRecordings)

		r.Route("/storage", func(r chi.Router) {
			r.Get("/", storageHandler.Configs)
			r.Post("/", storageHandler.SaveConfig)
			r.Post("/test", storageHandler.TestConnection)
			r.Put("/{id}", storageHandler.UpdateConfig)
			r.Delete("/{id}", storageHandler.DeleteConfig)
		})
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Info("server started", slog.String("address", cfg.Address))

	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start server", sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
