package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"turni/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	message := update.Message

	if message.IsCommand() {
		b.handleCommand(ctx, update)
		return
	}

	// Free text only matters when a flow is waiting for it.
	state, err := b.stateService.GetUserState(ctx, message.Chat.ID, message.From.ID)
	if err != nil || state == nil {
		return
	}

	if state.Step == models.StateConfigEnterTypes {
		b.handleConfigText(ctx, update, state)
	}
}

func (b *Bot) handleCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	command := message.Command()

	if b.metrics != nil {
		b.metrics.CommandsProcessed.WithLabelValues(command).Inc()
	}

	switch command {
	case "start":
		b.sendMessage(message.Chat.ID, renderWelcome(message.From.FirstName))
	case "aiuto":
		b.sendMessage(message.Chat.ID, renderHelp())
	case "prenota":
		b.handleBookCommand(ctx, update, models.DutyTrash)
	case "caffe":
		b.handleBookCommand(ctx, update, models.DutyCoffee)
	case "cancella":
		b.handleCancelCommand(ctx, update)
	case "visualizza":
		b.handleViewCommand(ctx, update)
	case "calendario":
		b.handleCalendarCommand(ctx, update)
	case "configura":
		b.handleConfigureCommand(ctx, update)
	case "leaderboard":
		b.handleLeaderboardCommand(ctx, update)
	case "esporta":
		b.handleExportCommand(ctx, update)
	case "annulla":
		b.handleAbortCommand(ctx, update)
	default:
		b.sendMessage(message.Chat.ID, "Comando non riconosciuto. Usa /aiuto per la lista dei comandi.")
	}
}

// handleBookCommand starts the date picker for one duty kind. Trash buttons
// carry that weekday's schedule text; coffee buttons carry only the date.
func (b *Bot) handleBookCommand(ctx context.Context, update tgbotapi.Update, duty string) {
	message := update.Message
	dates := b.bookingService.CandidateDates(time.Now())

	var schedule map[int]string
	if duty == models.DutyTrash {
		var err error
		schedule, err = b.scheduleService.WeeklySchedule(ctx)
		if err != nil {
			b.logger.Error().Err(err).Msg("load weekly schedule")
			b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
			return
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, date := range dates {
		label := dayLabel(date)
		if duty == models.DutyTrash {
			label = fmt.Sprintf("%s - %s", label, scheduleText(schedule, weekdayIndex(date)))
		}
		data := fmt.Sprintf("book:%s:%s", duty, date.Format(callbackDateLayout))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}

	prompt := "Seleziona un giorno per prenotarti a portare la spazzatura:"
	step := models.StateSelectTrashDate
	if duty == models.DutyCoffee {
		prompt = "Seleziona un giorno per prenotarti a pulire la macchina del caffè:"
		step = models.StateSelectCoffeeDate
	}

	if err := b.stateService.SetUserState(ctx, message.Chat.ID, message.From.ID, step, nil); err != nil {
		b.logger.Error().Err(err).Msg("set user state")
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(message.Chat.ID, prompt, keyboard); err != nil {
		b.logger.Error().Err(err).Msg("send date picker")
	}
}

// handleCancelCommand opens the duty-kind chooser of the cancellation flow.
func (b *Bot) handleCancelCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message

	if err := b.stateService.SetUserState(ctx, message.Chat.ID, message.From.ID, models.StateCancelChooseDuty, nil); err != nil {
		b.logger.Error().Err(err).Msg("set user state")
	}

	keyboard := cancelDutyKeyboard()
	if _, err := b.tgService.SendWithInlineKeyboard(message.Chat.ID, "Quale prenotazione vuoi cancellare?", keyboard); err != nil {
		b.logger.Error().Err(err).Msg("send cancel chooser")
	}
}

func cancelDutyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Spazzatura", "cancel_kind:"+models.DutyTrash),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("☕ Macchina del caffè", "cancel_kind:"+models.DutyCoffee),
		),
	)
}

func (b *Bot) handleViewCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	now := time.Now()

	schedule, err := b.scheduleService.WeeklySchedule(ctx)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := nextMondayOf(now).AddDate(0, 0, 4) // Friday of next week

	trash, err := b.bookingService.RostersInRange(ctx, models.DutyTrash, from, to)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}
	coffee, err := b.bookingService.RostersInRange(ctx, models.DutyCoffee, from, to)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	b.sendMarkdown(message.Chat.ID, renderRosters(now, schedule, trash, coffee))
}

func (b *Bot) handleCalendarCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	now := time.Now()

	schedule, err := b.scheduleService.WeeklySchedule(ctx)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := nextMondayOf(now).AddDate(0, 0, -3) // Friday of the current week

	trash, err := b.bookingService.RostersInRange(ctx, models.DutyTrash, from, to)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}
	coffee, err := b.bookingService.RostersInRange(ctx, models.DutyCoffee, from, to)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	b.sendMarkdown(message.Chat.ID, renderCalendar(now, schedule, trash, coffee))
}

// handleConfigureCommand starts the admin schedule-edit flow. Non-admins are
// rejected before any state is created.
func (b *Bot) handleConfigureCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message

	if !b.userService.IsAdmin(message.Chat.ID, message.From.ID) {
		b.sendMessage(message.Chat.ID, "⛔ Solo gli amministratori possono configurare il calendario.")
		return
	}

	schedule, err := b.scheduleService.WeeklySchedule(ctx)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for idx := 0; idx < 5; idx++ {
		label := fmt.Sprintf("%s - %s", models.WeekdayNames[idx], scheduleText(schedule, idx))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("config:%d", idx)),
		))
	}

	if err := b.stateService.SetUserState(ctx, message.Chat.ID, message.From.ID, models.StateConfigSelectDay, nil); err != nil {
		b.logger.Error().Err(err).Msg("set user state")
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(message.Chat.ID, "Seleziona un giorno per configurare i tipi di spazzatura:", keyboard); err != nil {
		b.logger.Error().Err(err).Msg("send config chooser")
	}
}

// handleConfigText applies the comma-separated free text of the config flow.
func (b *Bot) handleConfigText(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	message := update.Message

	weekday, ok := state.GetInt("config_day")
	if !ok || weekday < 0 || weekday > 4 {
		b.sendMessage(message.Chat.ID, "Si è verificato un errore. Riprova con /configura.")
		b.clearState(ctx, message.Chat.ID, message.From.ID)
		return
	}

	trashTypes := strings.TrimSpace(message.Text)
	if err := b.scheduleService.SetTrashTypes(ctx, weekday, trashTypes); err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		b.clearState(ctx, message.Chat.ID, message.From.ID)
		return
	}

	b.clearState(ctx, message.Chat.ID, message.From.ID)
	b.sendMessage(message.Chat.ID, fmt.Sprintf("Tipi di spazzatura per %s aggiornati a: %s", models.WeekdayNames[weekday], trashTypes))
}

func (b *Bot) handleLeaderboardCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message

	entries, err := b.bookingService.Leaderboard(ctx)
	if err != nil {
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	b.sendMarkdown(message.Chat.ID, renderLeaderboard(entries))
}

func (b *Bot) handleAbortCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	b.clearState(ctx, message.Chat.ID, message.From.ID)
	b.sendMessage(message.Chat.ID, "Operazione annullata.")
}

func (b *Bot) clearState(ctx context.Context, chatID, userID int64) {
	if err := b.stateService.ClearUserState(ctx, chatID, userID); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Int64("user_id", userID).Msg("clear user state")
	}
}

// displayName mirrors the roster naming convention: first and last name plus
// the @username when present.
func displayName(user *tgbotapi.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if user.UserName != "" {
		return fmt.Sprintf("%s (@%s)", name, user.UserName)
	}
	return name
}
