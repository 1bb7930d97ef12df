package service

import (
	"fmt"

	"turni/internal/domain"
	"turni/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramService shapes outgoing messages and answers membership queries.
type TelegramService struct {
	sender domain.TelegramSender
	logger *zerolog.Logger
}

func NewTelegramService(sender domain.TelegramSender, logger *zerolog.Logger) *TelegramService {
	return &TelegramService{
		sender: sender,
		logger: logger,
	}
}

func (s *TelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.sender.Send(c)
}

func (s *TelegramService) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return s.sender.Request(c)
}

func (s *TelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return s.sender.Send(msg)
}

func (s *TelegramService) SendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeMarkdown
	return s.sender.Send(msg)
}

func (s *TelegramService) SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.sender.Send(msg)
}

// EditMessage replaces text and, when non-nil, the inline keyboard of a sent
// message. Passing a nil keyboard leaves the message buttonless.
func (s *TelegramService) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = models.ParseModeMarkdown
	if keyboard != nil {
		edit.ReplyMarkup = keyboard
	}
	return s.sender.Send(edit)
}

func (s *TelegramService) AnswerCallback(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := s.sender.Request(callback); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// IsChatAdmin asks Telegram whether the user administers the chat. In private
// chats there is no admin concept, so the check is delegated to the allowlist
// by returning false here.
func (s *TelegramService) IsChatAdmin(chatID, userID int64) (bool, error) {
	if chatID == userID {
		return false, nil
	}

	member, err := s.sender.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return false, fmt.Errorf("get chat member: %w", err)
	}

	return member.Status == "administrator" || member.Status == "creator", nil
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.sender.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.sender.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.sender.StopReceivingUpdates()
}
