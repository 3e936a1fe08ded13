package camerashandler

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

type CameraHandler struct {
	log    *slog.Logger
	camera Camera
}

type Camera interface {
	Cameras() ([]models.Camera, error)
	SaveCamera(req models.CreateCamera) (models.Camera, error)
	UpdateCamera(id string, upd models.UpdateCamera) (models.Camera, error)
	DeleteCamera(id string) error
}

func New(
	log *slog.Logger,
	camera Camera,
) *CameraHandler {
	return &CameraHandler{
		log:    log,
		camera: camera,
	}
}

func (h *CameraHandler) Cameras(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.Cameras"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cams, err := h.camera.Cameras()
	if err != nil {
		log.Error("failed to get cameras", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch cameras", middleware.GetReqID(r.Context())))

		return
	}

	if cams == nil {
		cams = []models.Camera{}
	}

	render.JSON(w, r, cams)
}

func (h *CameraHandler) SaveCamera(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.SaveCamera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateCamera
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

	cam, err := h.camera.SaveCamera(req)
	if err != nil {
		log.Error("failed to save camera", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create camera", middleware.GetReqID(r.Context())))

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, cam)
}

func (h *CameraHandler) UpdateCamera(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.UpdateCamera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.UpdateCamera
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

	cam, err := h.camera.UpdateCamera(id, req)
	if err != nil {
		if errors.Is(err, errs.ErrNoFieldsToUpdate) {
			log.Error("nothing to update")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("no fields to update", ""))

			return
		}

		if errors.Is(err, errs.ErrCameraNotFound) {
			log.Error("camera not found", slog.String("camera_id", id))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("camera not found", ""))

			return
		}

		log.Error("failed to update camera", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update camera", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, cam)
}

func (h *CameraHandler) DeleteCamera(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.DeleteCamera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	if err := h.camera.DeleteCamera(id); err != nil {
		if errors.Is(err, errs.ErrCameraNotFound) {
			log.Error("camera not found", slog.String("camera_id", id))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("camera not found", ""))

			return
		}

		log.Error("failed to delete camera", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete camera", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, response.OK())
}
