package camerastorage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/storage/postgres"
)

type CameraStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *CameraStorage {
	return &CameraStorage{
		db: db,
	}
}

func (s *CameraStorage) Cameras() ([]models.Camera, error) {
	const op = "storage.postgres.cameras.Cameras"

	var cams []models.Camera

	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY added_at DESC`, postgres.CamerasTable)

	if err := s.db.Select(&cams, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cams, nil
}

func (s *CameraStorage) Camera(id string) (models.Camera, error) {
	const op = "storage.postgres.cameras.Camera"

	var cam models.Camera

	query := fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, postgres.CamerasTable)

	if err := s.db.Get(&cam, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
		}

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraStorage) Save(cam models.Camera) (models.Camera, error) {
	const op = "storage.postgres.cameras.Save"

	query := fmt.Sprintf(`INSERT INTO %s (id, name, ip_address, port, stream_url, status, group_name, recording_interval_min, retention_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING *`, postgres.CamerasTable)

	err := s.db.QueryRowx(query,
		cam.ID, cam.Name, cam.IPAddress, cam.Port, cam.StreamURL,
		cam.Status, cam.GroupName, cam.RecordingIntervalMin, cam.RetentionDays,
	).StructScan(&cam)
	if err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraStorage) Update(id string, upd models.UpdateCamera) (models.Camera, error) {
	const op = "storage.postgres.cameras.Update"

	fields := make([]string, 0, 5)
	values := make([]interface{}, 0, 6)

	add := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(values)+1))
		values = append(values, value)
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.GroupName != nil {
		if *upd.GroupName == "" {
			add("group_name", nil)
		} else {
			add("group_name", *upd.GroupName)
		}
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.RecordingIntervalMin != nil {
		add("recording_interval_min", *upd.RecordingIntervalMin)
	}
	if upd.RetentionDays != nil {
		add("retention_days", *upd.RetentionDays)
	}

	if len(fields) == 0 {
		return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrNoFieldsToUpdate)
	}

	values = append(values, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING *`,
		postgres.CamerasTable, strings.Join(fields, ", "), len(values))

	var cam models.Camera
	if err := s.db.QueryRowx(query, values...).StructScan(&cam); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
		}

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraStorage) Delete(id string) error {
	const op = "storage.postgres.cameras.Delete"

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, postgres.CamerasTable)

	result, err := s.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
	}

	return nil
}
