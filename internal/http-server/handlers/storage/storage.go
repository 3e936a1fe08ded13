package storagehandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/lib/api/response"
	"github.com/opennvr/console/internal/lib/sl"
)

type StorageHandler struct {
	log     *slog.Logger
	storage Storage
}

type Storage interface {
	Configs() ([]models.StorageConfig, error)
	SaveConfig(req models.CreateStorageConfig) (models.StorageConfig, error)
	UpdateConfig(id string, upd models.UpdateStorageConfig) (models.StorageConfig, error)
	DeleteConfig(id string) error
	TestConnection(req models.ConnectionTest) models.ConnectionTestResult
}

func New(
	log *slog.Logger,
	storage Storage,
) *StorageHandler {
	return &StorageHandler{
		log:     log,
		storage: storage,
	}
}

func (h *StorageHandler) Configs(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storage.Configs"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	configs, err := h.storage.Configs()
	if err != nil {
		log.Error("failed to get storage configs", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch storage configs", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, configs)
}

func (h *StorageHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storage.SaveConfig"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateStorageConfig
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request", ""))

			return
		}

		log.Error("failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to decode request", middleware.GetReqID(r.Context())))

		return
	}

	log.Info("request body decoded", slog.Any("request", req))

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))

		return
	}

	saved, err := h.storage.SaveConfig(req)
	if err != nil {
		log.Error("failed to save storage config", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create storage config", middleware.GetReqID(r.Context())))

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, saved)
}

func (h *StorageHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storage.UpdateConfig"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.UpdateStorageConfig
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request", ""))

			return
		}

		log.Error("failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to decode request", middleware.GetReqID(r.Context())))

		return
	}

	log.Info("request body decoded", slog.Any("request", req))

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))

		return
	}

	saved, err := h.storage.UpdateConfig(id, req)
	if err != nil {
		if errors.Is(err, errs.ErrConfigNotFound) {
			log.Error("storage config not found", slog.String("config_id", id))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("storage config not found", ""))

			return
		}

		log.Error("failed to update storage config", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update storage config", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, saved)
}

func (h *StorageHandler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storage.DeleteConfig"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	if err := h.storage.DeleteConfig(id); err != nil {
		if errors.Is(err, errs.ErrConfigNotFound) {
			log.Error("storage config not found", slog.String("config_id", id))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("storage config not found", ""))

			return
		}

		log.Error("failed to delete storage config", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete storage config", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, response.OK())
}

func (h *StorageHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storage.TestConnection"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ConnectionTest
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request", ""))

			return
		}

		log.Error("failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to decode request", middleware.GetReqID(r.Context())))

		return
	}

	log.Info("request body decoded", slog.Any("request", req))

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))

		return
	}

	result := h.storage.TestConnection(req)
	if !result.Success {
		render.Status(r, http.StatusBadRequest)
	}

	render.JSON(w, r, result)
}
