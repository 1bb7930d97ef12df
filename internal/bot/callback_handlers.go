package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"turni/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	data := callback.Data

	// Answer right away so the client stops showing the spinner.
	if err := b.tgService.AnswerCallback(callback.ID, ""); err != nil {
		b.logger.Error().Err(err).Msg("answer callback")
	}

	switch {
	case strings.HasPrefix(data, "book:"):
		b.handleBookCallback(ctx, update)

	case strings.HasPrefix(data, "cancel_kind:"):
		b.handleCancelKindCallback(ctx, update)

	case strings.HasPrefix(data, "cancel:"):
		b.handleCancelCallback(ctx, update)

	case data == "cancel_back":
		b.handleCancelBackCallback(ctx, update)

	case strings.HasPrefix(data, "config:"):
		b.handleConfigDayCallback(ctx, update)
	}
}

// handleBookCallback finishes the booking flow for a picked date.
func (b *Bot) handleBookCallback(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	duty, date, err := parseDutyDate(strings.TrimPrefix(callback.Data, "book:"))
	if err != nil {
		b.logger.Warn().Err(err).Str("data", callback.Data).Msg("malformed booking callback")
		b.editText(chatID, callback.Message.MessageID, b.getErrorMessage(err))
		b.clearState(ctx, chatID, userID)
		return
	}

	created, err := b.bookingService.Book(ctx, duty, date, userID, displayName(callback.From))
	if err != nil {
		b.editText(chatID, callback.Message.MessageID, b.getErrorMessage(err))
		b.clearState(ctx, chatID, userID)
		return
	}

	label := dayLabel(date)
	var text string
	switch {
	case duty == models.DutyTrash && created:
		trashTypes, err := b.scheduleService.TrashTypes(ctx, weekdayIndex(date))
		if err != nil {
			trashTypes = models.NoCollection
		}
		text = fmt.Sprintf("Hai prenotato per %s!\nTipo di rifiuti da raccogliere: %s", label, trashTypes)
		if b.metrics != nil {
			b.metrics.BookingsCreated.WithLabelValues(duty).Inc()
		}
	case duty == models.DutyTrash:
		text = fmt.Sprintf("Sei già prenotato per portare la spazzatura %s!", label)
	case created:
		text = fmt.Sprintf("Hai prenotato per pulire la macchina del caffè %s!", label)
		if b.metrics != nil {
			b.metrics.BookingsCreated.WithLabelValues(duty).Inc()
		}
	default:
		text = fmt.Sprintf("Sei già prenotato per pulire la macchina del caffè %s!", label)
	}

	if roster := b.renderDateRoster(ctx, date); roster != "" {
		text += "\n\n" + roster
	}

	b.editText(chatID, callback.Message.MessageID, text)
	b.clearState(ctx, chatID, userID)
}

// renderDateRoster renders both duty rosters for one date, shown after a
// booking confirmation.
func (b *Bot) renderDateRoster(ctx context.Context, date time.Time) string {
	trashNames, err := b.bookingService.RosterForDate(ctx, models.DutyTrash, date)
	if err != nil {
		b.logger.Error().Err(err).Msg("load trash roster")
		return ""
	}
	coffeeNames, err := b.bookingService.RosterForDate(ctx, models.DutyCoffee, date)
	if err != nil {
		b.logger.Error().Err(err).Msg("load coffee roster")
		return ""
	}
	return renderDaySection(date, "", trashNames, coffeeNames)
}

// handleCancelKindCallback lists the caller's own bookings for one duty kind.
func (b *Bot) handleCancelKindCallback(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	duty := strings.TrimPrefix(callback.Data, "cancel_kind:")
	dates, err := b.bookingService.UserBookings(ctx, duty, userID)
	if err != nil {
		b.editText(chatID, callback.Message.MessageID, b.getErrorMessage(err))
		b.clearState(ctx, chatID, userID)
		return
	}

	if len(dates) == 0 {
		b.editText(chatID, callback.Message.MessageID,
			fmt.Sprintf("Non hai prenotazioni per la %s.", models.DutyNames[duty]))
		b.clearState(ctx, chatID, userID)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, date := range dates {
		data := fmt.Sprintf("cancel:%s:%s", duty, date.Format(callbackDateLayout))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(dayLabel(date), data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Indietro", "cancel_back"),
	))

	if err := b.stateService.SetUserState(ctx, chatID, userID, models.StateCancelChooseDate, map[string]interface{}{"duty": duty}); err != nil {
		b.logger.Error().Err(err).Msg("set user state")
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.EditMessage(chatID, callback.Message.MessageID, "Seleziona la prenotazione da cancellare:", &keyboard); err != nil {
		b.logger.Error().Err(err).Msg("edit cancel picker")
	}
}

// handleCancelCallback deletes the picked booking.
func (b *Bot) handleCancelCallback(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	duty, date, err := parseDutyDate(strings.TrimPrefix(callback.Data, "cancel:"))
	if err != nil {
		b.logger.Warn().Err(err).Str("data", callback.Data).Msg("malformed cancel callback")
		b.editText(chatID, callback.Message.MessageID, b.getErrorMessage(err))
		b.clearState(ctx, chatID, userID)
		return
	}

	if err := b.bookingService.Cancel(ctx, duty, date, userID); err != nil {
		b.editText(chatID, callback.Message.MessageID, b.getErrorMessage(err))
		b.clearState(ctx, chatID, userID)
		return
	}

	if b.metrics != nil {
		b.metrics.BookingsCanceled.WithLabelValues(duty).Inc()
	}

	b.editText(chatID, callback.Message.MessageID,
		fmt.Sprintf("Prenotazione per la %s di %s cancellata.", models.DutyNames[duty], dayLabel(date)))
	b.clearState(ctx, chatID, userID)
}

// handleCancelBackCallback returns from the date list to the duty chooser.
func (b *Bot) handleCancelBackCallback(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	if err := b.stateService.SetUserState(ctx, chatID, userID, models.StateCancelChooseDuty, nil); err != nil {
		b.logger.Error().Err(err).Msg("set user state")
	}

	keyboard := cancelDutyKeyboard()
	if _, err := b.tgService.EditMessage(chatID, callback.Message.MessageID, "Quale prenotazione vuoi cancellare?", &keyboard); err != nil {
		b.logger.Error().Err(err).Msg("edit cancel chooser")
	}
}

// handleConfigDayCallback asks for the replacement text of a weekday entry.
// The admin gate is checked again: callback payloads can arrive long after
// the command, or from a forwarded keyboard.
func (b *Bot) handleConfigDayCallback(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	if !b.userService.IsAdmin(chatID, userID) {
		b.editText(chatID, callback.Message.MessageID, "⛔ Solo gli amministratori possono configurare il calendario.")
		return
	}

	weekday, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "config:"))
	if err != nil || weekday < 0 || weekday > 4 {
		b.editText(chatID, callback.Message.MessageID, b.getErrorMessage(err))
		b.clearState(ctx, chatID, userID)
		return
	}

	currentTypes, err := b.scheduleService.TrashTypes(ctx, weekday)
	if err != nil {
		currentTypes = models.NoCollection
	}

	if err := b.stateService.SetUserState(ctx, chatID, userID, models.StateConfigEnterTypes, map[string]interface{}{"config_day": weekday}); err != nil {
		b.logger.Error().Err(err).Msg("set user state")
	}

	b.editText(chatID, callback.Message.MessageID, fmt.Sprintf(
		"Configura i tipi di spazzatura per %s\nAttualmente: %s\n\n"+
			"Invia un messaggio con i tipi di spazzatura separati da virgola (es. 'Organico, Carta') "+
			"o invia /annulla per annullare.",
		models.WeekdayNames[weekday], currentTypes))
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	if _, err := b.tgService.EditMessage(chatID, messageID, text, nil); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("edit message error")
	}
}

// parseDutyDate splits "<duty>:<ISO date>" callback payloads.
func parseDutyDate(raw string) (string, time.Time, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return "", time.Time{}, fmt.Errorf("malformed payload %q", raw)
	}
	duty := parts[0]
	if duty != models.DutyTrash && duty != models.DutyCoffee {
		return "", time.Time{}, fmt.Errorf("unknown duty %q", duty)
	}
	date, err := parseCallbackDate(parts[1])
	if err != nil {
		return "", time.Time{}, err
	}
	return duty, date, nil
}
