package groupstorage

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opennvr/console/internal/storage/postgres"
)

type GroupStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *GroupStorage {
	return &GroupStorage{
		db: db,
	}
}

func (s *GroupStorage) GroupNames() ([]string, error) {
	const op = "storage.postgres.groups.GroupNames"

	var names []string

	query := fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, postgres.GroupsTable)

	if err := s.db.Select(&names, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}

// Save creates the group if absent; an existing group with the same name is
// left untouched.
func (s *GroupStorage) Save(name string) error {
	const op = "storage.postgres.groups.Save"

	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, postgres.GroupsTable)

	if _, err := s.db.Exec(query, name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Delete clears the group reference on member cameras before removing the
// group row. Cameras themselves are kept.
func (s *GroupStorage) Delete(name string) error {
	const op = "storage.postgres.groups.Delete"

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	clearRefs := fmt.Sprintf(`UPDATE %s SET group_name = NULL WHERE group_name = $1`, postgres.CamerasTable)
	if _, err := tx.Exec(clearRefs, name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	deleteGroup := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, postgres.GroupsTable)
	if _, err := tx.Exec(deleteGroup, name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
