package recordingservice

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/lib/sl"
	"github.com/opennvr/console/internal/services/segments"
)

type RecordingService struct {
	log            *slog.Logger
	cameraProvider CameraProvider
	generator      *segments.Generator
}

type CameraProvider interface {
	Camera(id string) (models.Camera, error)
}

func New(log *slog.Logger, cameraProvider CameraProvider, generator *segments.Generator) *RecordingService {
	return &RecordingService{
		log:            log,
		cameraProvider: cameraProvider,
		generator:      generator,
	}
}

// CameraRecordings returns the camera's expected segment schedule, newest
// first. The schedule is regenerated from the camera's current policy on
// every call, so interval or retention changes take effect immediately.
func (s *RecordingService) CameraRecordings(cameraID string) ([]models.Segment, error) {
	const op = "services.recordings.CameraRecordings"

	log := s.log.With(
		slog.String("op", op),
		slog.String("camera_id", cameraID),
	)

	cam, err := s.cameraProvider.Camera(cameraID)
	if err != nil {
		log.Error("failed to get camera", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	segs, err := s.generator.Generate(cam)
	if err != nil {
		log.Error("failed to generate segments", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slices.Reverse(segs)

	return segs, nil
}
