package domain

import (
	"context"
	"time"

	"turni/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Repository is the relational store behind the three workflows.
type Repository interface {
	GetTrashTypes(ctx context.Context, weekday int) (string, error)
	SetTrashTypes(ctx context.Context, weekday int, trashTypes string) error
	GetWeeklySchedule(ctx context.Context) (map[int]string, error)

	AddBooking(ctx context.Context, duty string, date time.Time, userID int64, userName string) (bool, error)
	ListBookingsForDate(ctx context.Context, duty string, date time.Time) ([]string, error)
	ListBookingsInRange(ctx context.Context, duty string, from, to time.Time) (map[string][]string, error)
	ListUserBookings(ctx context.Context, duty string, userID int64) ([]time.Time, error)
	DeleteBooking(ctx context.Context, duty string, date time.Time, userID int64) error
	ListAllBookings(ctx context.Context, duty string) ([]*models.Booking, error)

	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// StateRepository persists per-(chat, user) conversation state with a TTL.
type StateRepository interface {
	GetState(ctx context.Context, chatID, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	ClearState(ctx context.Context, chatID, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

// StateManager is the service-level view of conversation state.
type StateManager interface {
	GetUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error)
	SetUserState(ctx context.Context, chatID, userID int64, step string, data map[string]interface{}) error
	ClearUserState(ctx context.Context, chatID, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the thin surface of the underlying bot API client.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// TelegramService adds message-shaping helpers on top of TelegramSender.
type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendMarkdown(chatID int64, text string) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	IsChatAdmin(chatID, userID int64) (bool, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// BookingService implements the booking workflow semantics.
type BookingService interface {
	CandidateDates(now time.Time) []time.Time
	ValidateBookingDate(now, date time.Time) error
	Book(ctx context.Context, duty string, date time.Time, userID int64, userName string) (bool, error)
	Cancel(ctx context.Context, duty string, date time.Time, userID int64) error
	RosterForDate(ctx context.Context, duty string, date time.Time) ([]string, error)
	RostersInRange(ctx context.Context, duty string, from, to time.Time) (map[string][]string, error)
	UserBookings(ctx context.Context, duty string, userID int64) ([]time.Time, error)
	AllBookings(ctx context.Context, duty string) ([]*models.Booking, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// ScheduleService wraps the weekly trash schedule store.
type ScheduleService interface {
	TrashTypes(ctx context.Context, weekday int) (string, error)
	SetTrashTypes(ctx context.Context, weekday int, trashTypes string) error
	WeeklySchedule(ctx context.Context) (map[int]string, error)
}

// SheetsWriter mirrors bookings into a spreadsheet.
type SheetsWriter interface {
	AppendBooking(ctx context.Context, booking *models.Booking) error
	DeleteBookingRow(ctx context.Context, bookingID int64) error
	ReplaceBookingsSheet(ctx context.Context, bookings []*models.Booking) error
}

// SyncWorker schedules spreadsheet mirror work.
type SyncWorker interface {
	EnqueueAppend(ctx context.Context, booking *models.Booking) error
	EnqueueDelete(ctx context.Context, bookingID int64) error
	EnqueueRefresh(ctx context.Context) error
}
