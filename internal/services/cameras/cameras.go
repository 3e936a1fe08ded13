package cameraservice

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/lib/sl"
)

type CameraService struct {
	log           *slog.Logger
	cameraStorage CameraStorage
	groupSaver    GroupSaver
}

type CameraStorage interface {
	Cameras() ([]models.Camera, error)
	Save(cam models.Camera) (models.Camera, error)
	Update(id string, upd models.UpdateCamera) (models.Camera, error)
	Delete(id string) error
}

type GroupSaver interface {
	Save(name string) error
}

func New(log *slog.Logger, cameraStorage CameraStorage, groupSaver GroupSaver) *CameraService {
	return &CameraService{
		log:           log,
		cameraStorage: cameraStorage,
		groupSaver:    groupSaver,
	}
}

func (s *CameraService) Cameras() ([]models.Camera, error) {
	const op = "services.cameras.Cameras"

	cams, err := s.cameraStorage.Cameras()
	if err != nil {
		s.log.Error("failed to get cameras", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cams, nil
}

func (s *CameraService) SaveCamera(req models.CreateCamera) (models.Camera, error) {
	const op = "services.cameras.SaveCamera"

	log := s.log.With(
		slog.String("op", op),
		slog.String("camera_name", req.Name),
	)

	port := req.Port
	if port == 0 {
		port = models.DefaultPort
	}

	streamURL := req.StreamURL
	if streamURL == "" {
		streamURL = fmt.Sprintf("rtsp://%s:%d/stream1", req.IPAddress, port)
	}

	interval := req.RecordingIntervalMin
	if interval == 0 {
		interval = models.DefaultRecordingIntervalMin
	}

	retention := req.RetentionDays
	if retention == 0 {
		retention = models.DefaultRetentionDays
	}

	var groupName *string
	if req.GroupName != "" {
		if err := s.groupSaver.Save(req.GroupName); err != nil {
			log.Error("failed to ensure group", sl.Err(err))

			return models.Camera{}, fmt.Errorf("%s: %w", op, err)
		}

		groupName = &req.GroupName
	}

	cam := models.Camera{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		IPAddress:            req.IPAddress,
		Port:                 port,
		StreamURL:            streamURL,
		Status:               models.StatusOnline,
		GroupName:            groupName,
		RecordingIntervalMin: interval,
		RetentionDays:        retention,
	}

	log.Info("save camera", slog.String("camera_id", cam.ID))

	cam, err := s.cameraStorage.Save(cam)
	if err != nil {
		log.Error("failed to save camera", sl.Err(err))

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraService) UpdateCamera(id string, upd models.UpdateCamera) (models.Camera, error) {
	const op = "services.cameras.UpdateCamera"

	log := s.log.With(
		slog.String("op", op),
		slog.String("camera_id", id),
	)

	if upd == (models.UpdateCamera{}) {
		log.Error("nothing to update")

		return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrNoFieldsToUpdate)
	}

	if upd.GroupName != nil && *upd.GroupName != "" {
		if err := s.groupSaver.Save(*upd.GroupName); err != nil {
			log.Error("failed to ensure group", sl.Err(err))

			return models.Camera{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Info("update camera")

	cam, err := s.cameraStorage.Update(id, upd)
	if err != nil {
		log.Error("failed to update camera", sl.Err(err))

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraService) DeleteCamera(id string) error {
	const op = "services.cameras.DeleteCamera"

	log := s.log.With(
		slog.String("op", op),
		slog.String("camera_id", id),
	)

	log.Info("delete camera")

	if err := s.cameraStorage.Delete(id); err != nil {
		log.Error("failed to delete camera", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
