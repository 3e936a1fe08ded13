package groupshandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/lib/api/response"
	"github.com/opennvr/console/internal/lib/sl"
)

type GroupHandler struct {
	log   *slog.Logger
	group Group
}

type Group interface {
	Groups() ([]string, error)
	SaveGroup(name string) error
	DeleteGroup(name string) error
}

func New(
	log *slog.Logger,
	group Group,
) *GroupHandler {
	return &GroupHandler{
		log:   log,
		group: group,
	}
}

func (h *GroupHandler) Groups(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.groups.Groups"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	names, err := h.group.Groups()
	if err != nil {
		log.Error("failed to get groups", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch groups", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, names)
}

func (h *GroupHandler) SaveGroup(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.groups.SaveGroup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateGroup
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

	if err := h.group.SaveGroup(req.Name); err != nil {
		log.Error("failed to save group", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create group", middleware.GetReqID(r.Context())))

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, req)
}

func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.groups.DeleteGroup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "name")

	if err := h.group.DeleteGroup(name); err != nil {
		log.Error("failed to delete group", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete group", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, response.OK())
}
