package service

import (
	"turni/internal/domain"

	"github.com/rs/zerolog"
)

// UserService decides who may touch the schedule and who is banned outright.
type UserService struct {
	telegram  domain.TelegramService
	admins    map[int64]struct{}
	blacklist map[int64]struct{}
	logger    *zerolog.Logger
}

func NewUserService(telegram domain.TelegramService, admins, blacklist []int64, logger *zerolog.Logger) *UserService {
	s := &UserService{
		telegram:  telegram,
		admins:    make(map[int64]struct{}, len(admins)),
		blacklist: make(map[int64]struct{}, len(blacklist)),
		logger:    logger,
	}
	for _, id := range admins {
		s.admins[id] = struct{}{}
	}
	for _, id := range blacklist {
		s.blacklist[id] = struct{}{}
	}
	return s
}

func (s *UserService) IsBlacklisted(userID int64) bool {
	_, banned := s.blacklist[userID]
	return banned
}

// IsAdmin grants access to configured admins and, in group chats, to Telegram
// chat administrators. A failed membership lookup denies rather than errors:
// schedule edits are not worth a retry loop.
func (s *UserService) IsAdmin(chatID, userID int64) bool {
	if _, ok := s.admins[userID]; ok {
		return true
	}

	isAdmin, err := s.telegram.IsChatAdmin(chatID, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("chat_id", chatID).Int64("user_id", userID).Msg("chat admin lookup failed")
		return false
	}
	return isAdmin
}
