package service

import (
	"errors"
	"os"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// fakeTelegramService stubs the Telegram surface; only IsChatAdmin matters here.
type fakeTelegramService struct {
	chatAdmins map[int64]bool
	lookupErr  error
}

func (f *fakeTelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegramService) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegramService) SendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegramService) SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegramService) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegramService) AnswerCallback(callbackID string, text string) error { return nil }

func (f *fakeTelegramService) IsChatAdmin(chatID, userID int64) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.chatAdmins[userID], nil
}

func (f *fakeTelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return nil
}

func (f *fakeTelegramService) GetSelf() tgbotapi.User { return tgbotapi.User{} }

func (f *fakeTelegramService) StopReceivingUpdates() {}

func TestIsAdminAllowlist(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	svc := NewUserService(&fakeTelegramService{}, []int64{42}, nil, &logger)

	assert.True(t, svc.IsAdmin(-100, 42))
	assert.False(t, svc.IsAdmin(-100, 43))
}

func TestIsAdminChatMembership(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	tg := &fakeTelegramService{chatAdmins: map[int64]bool{7: true}}
	svc := NewUserService(tg, nil, nil, &logger)

	assert.True(t, svc.IsAdmin(-100, 7))
	assert.False(t, svc.IsAdmin(-100, 8))
}

func TestIsAdminDeniesOnLookupFailure(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	tg := &fakeTelegramService{lookupErr: errors.New("telegram unreachable")}
	svc := NewUserService(tg, nil, nil, &logger)

	assert.False(t, svc.IsAdmin(-100, 7))
}

func TestIsBlacklisted(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	svc := NewUserService(&fakeTelegramService{}, nil, []int64{13}, &logger)

	assert.True(t, svc.IsBlacklisted(13))
	assert.False(t, svc.IsBlacklisted(14))
}
