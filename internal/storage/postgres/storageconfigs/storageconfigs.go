package configstorage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opennvr/console/internal/domain/errs"
	"github.com/opennvr/console/internal/domain/models"
	"github.com/opennvr/console/internal/storage/postgres"
)

type ConfigStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *ConfigStorage {
	return &ConfigStorage{
		db: db,
	}
}

func (s *ConfigStorage) Configs() ([]models.StorageConfig, error) {
	const op = "storage.postgres.storageconfigs.Configs"

	var configs []models.StorageConfig

	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY created_at`, postgres.StorageConfigTable)

	if err := s.db.Select(&configs, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return configs, nil
}

func (s *ConfigStorage) Save(cfg models.CreateStorageConfig) (models.StorageConfig, error) {
	const op = "storage.postgres.storageconfigs.Save"

	query := fmt.Sprintf(`INSERT INTO %s (type, name, config, is_active)
		VALUES ($1, $2, $3, $4) RETURNING *`, postgres.StorageConfigTable)

	var saved models.StorageConfig
	err := s.db.QueryRowx(query, cfg.Type, cfg.Name, cfg.Config, cfg.IsActive).StructScan(&saved)
	if err != nil {
		return models.StorageConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *ConfigStorage) Update(id string, upd models.UpdateStorageConfig) (models.StorageConfig, error) {
	const op = "storage.postgres.storageconfigs.Update"

	var payload interface{}
	if upd.Config != nil {
		payload = upd.Config
	}

	query := fmt.Sprintf(`UPDATE %s SET type = COALESCE($1, type), name = COALESCE($2, name),
		config = COALESCE($3, config), is_active = COALESCE($4, is_active), updated_at = NOW()
		WHERE id = $5 RETURNING *`, postgres.StorageConfigTable)

	var saved models.StorageConfig
	err := s.db.QueryRowx(query, upd.Type, upd.Name, payload, upd.IsActive, id).StructScan(&saved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StorageConfig{}, fmt.Errorf("%s: %w", op, errs.ErrConfigNotFound)
		}

		return models.StorageConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *ConfigStorage) DeactivateAll() error {
	const op = "storage.postgres.storageconfigs.DeactivateAll"

	query := fmt.Sprintf(`UPDATE %s SET is_active = false WHERE is_active = true`, postgres.StorageConfigTable)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *ConfigStorage) Delete(id string) error {
	const op = "storage.postgres.storageconfigs.Delete"

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, postgres.StorageConfigTable)

	result, err := s.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrConfigNotFound)
	}

	return nil
}
