package service

import (
	"context"

	"turni/internal/domain"
	"turni/internal/events"

	"github.com/rs/zerolog"
)

type ScheduleService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewScheduleService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *ScheduleService) TrashTypes(ctx context.Context, weekday int) (string, error) {
	return s.repo.GetTrashTypes(ctx, weekday)
}

// SetTrashTypes overwrites one weekday entry. The free text is stored as
// submitted; structure is the admins' problem.
func (s *ScheduleService) SetTrashTypes(ctx context.Context, weekday int, trashTypes string) error {
	if err := s.repo.SetTrashTypes(ctx, weekday, trashTypes); err != nil {
		return err
	}

	if s.eventBus != nil {
		payload := events.ScheduleEventPayload{Weekday: weekday, TrashTypes: trashTypes}
		if err := s.eventBus.PublishJSON(events.EventScheduleUpdated, payload); err != nil {
			s.logger.Error().Err(err).Int("weekday", weekday).Msg("publish event error")
		}
	}
	return nil
}

func (s *ScheduleService) WeeklySchedule(ctx context.Context) (map[int]string, error) {
	return s.repo.GetWeeklySchedule(ctx)
}
