package service

import (
	"context"
	"time"

	"turni/internal/domain"
	"turni/internal/models"

	"github.com/rs/zerolog"
)

type StateService struct {
	stateRepo domain.StateRepository
	logger    *zerolog.Logger
}

func NewStateService(stateRepo domain.StateRepository, logger *zerolog.Logger) *StateService {
	return &StateService{
		stateRepo: stateRepo,
		logger:    logger,
	}
}

func (s *StateService) GetUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error) {
	state, err := s.stateRepo.GetState(ctx, chatID, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Int64("user_id", userID).Msg("failed to get user state")
		return nil, err
	}

	return state, nil
}

func (s *StateService) SetUserState(ctx context.Context, chatID, userID int64, step string, data map[string]interface{}) error {
	state := &models.UserState{
		ChatID: chatID,
		UserID: userID,
		Step:   step,
		Data:   data,
	}
	return s.stateRepo.SetState(ctx, state)
}

func (s *StateService) ClearUserState(ctx context.Context, chatID, userID int64) error {
	return s.stateRepo.ClearState(ctx, chatID, userID)
}

func (s *StateService) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	return s.stateRepo.CheckRateLimit(ctx, userID, limit, window)
}
