package recordingshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/lib/api/response"
	"github.com/opennvr/console/internal/lib/sl"
)

type RecordingHandler struct {
	log               *slog.Logger
	recordingProvider RecordingProvider
}

type RecordingProvider interface {
	CameraRecordings(cameraID string) ([]models.Segment, error)
}

func New(
	log *slog.Logger,
	recordingProvider RecordingProvider,
) *RecordingHandler {
	return &RecordingHandler{
		log:               log,
		recordingProvider: recordingProvider,
	}
}

func (h *RecordingHandler) CameraRecordings(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recordings.CameraRecordings"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cameraID := chi.URLParam(r, "cameraID")

	segs, err := h.recordingProvider.CameraRecordings(cameraID)
	if err != nil {
		if errors.Is(err, errs.ErrCameraNotFound) {
			log.Error("camera not found", slog.String("camera_id", cameraID))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("camera not found", ""))

			return
		}

		if errors.Is(err, errs.ErrInvalidPolicy) {
			log.Error("invalid recording policy", slog.String("camera_id", cameraID))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("recording interval and retention must be positive", ""))

			return
		}

		log.Error("failed to get recordings", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch recordings", middleware.GetReqID(r.Context())))

		return
	}

	if segs == nil {
		segs = []models.Segment{}
	}

	render.JSON(w, r, segs)
}
