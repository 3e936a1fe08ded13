// Package segments materializes the expected recording schedule of a camera
// from its recording policy (interval in minutes, retention in days). The
// schedule is an idealized view: it is recomputed in full on every call and
// is never persisted, so a policy change simply replaces the previous set.
package segments

import (
	"fmt"
	"time"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
)

type Generator struct {
	now func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate returns one segment per interval boundary inside the camera's
// retention window, oldest first. Start times are multiples of the interval
// counted in minutes from the top of the hour: the cutoff's minute is rounded
// up to the next multiple and seconds are truncated. Minutes past 59 roll
// over into the next hour, so intervals that do not divide 60 keep stepping
// on the grid seeded by the cutoff rather than re-aligning each hour.
func (g *Generator) Generate(cam models.Camera) ([]models.Segment, error) {
	const op = "services.segments.Generate"

	interval := cam.RecordingIntervalMin
	retention := cam.RetentionDays

	if interval <= 0 || retention <= 0 {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidPolicy)
	}

	now := g.now()

	cutoff := now.Add(-time.Duration(retention) * 24 * time.Hour)
	if !cutoff.Before(now) {
		return []models.Segment{}, nil
	}

	minute := ((cutoff.Minute() + interval - 1) / interval) * interval
	start := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), cutoff.Hour(), minute, 0, 0, cutoff.Location())

	step := time.Duration(interval) * time.Minute

	segs := make([]models.Segment, 0, retention*24*60/interval)
	for ts := start; ts.Before(now); ts = ts.Add(step) {
		segs = append(segs, models.Segment{
			ID:        SegmentID(cam.ID, ts),
			CameraID:  cam.ID,
			Timestamp: ts,
			Duration:  interval * 60,
		})
	}

	return segs, nil
}

// SegmentID is stable: the same camera id and start time always map to the
// same id.
func SegmentID(cameraID string, start time.Time) string {
	return fmt.Sprintf("%s-%d", cameraID, start.UnixMilli())
}
