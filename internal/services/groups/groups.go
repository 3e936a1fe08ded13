package groupservice

import (
	"fmt"
	"log/slog"

	"github.com/opennvr/console/internal/lib/sl"
)

type GroupService struct {
	log          *slog.Logger
	groupStorage GroupStorage
}

type GroupStorage interface {
	GroupNames() ([]string, error)
	Save(name string) error
	Delete(name string) error
}

func New(log *slog.Logger, groupStorage GroupStorage) *GroupService {
	return &GroupService{
		log:          log,
		groupStorage: groupStorage,
	}
}

func (s *GroupService) Groups() ([]string, error) {
	const op = "services.groups.Groups"

	names, err := s.groupStorage.GroupNames()
	if err != nil {
		s.log.Error("failed to get groups", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if names == nil {
		names = []string{}
	}

	return names, nil
}

// SaveGroup is idempotent: creating a group that already exists is a no-op.
func (s *GroupService) SaveGroup(name string) error {
	const op = "services.groups.SaveGroup"

	log := s.log.With(
		slog.String("op", op),
		slog.String("group", name),
	)

	log.Info("save group")

	if err := s.groupStorage.Save(name); err != nil {
		log.Error("failed to save group", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *GroupService) DeleteGroup(name string) error {
	const op = "services.groups.DeleteGroup"

	log := s.log.With(
		slog.String("op", op),
		slog.String("group", name),
	)

	log.Info("delete group")

	if err := s.groupStorage.Delete(name); err != nil {
		log.Error("failed to delete group", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
