package bot

import (
	"context"
	"fmt"
	"time"

	"turni/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StartReminders schedules the daily duty reminder at the configured hour.
func (b *Bot) StartReminders(ctx context.Context) {
	if b == nil || b.tgService == nil {
		return
	}

	go func() {
		hour := models.ReminderHour
		if b.config.Bot.ReminderTime != "" {
			var m int
			if _, err := fmt.Sscanf(b.config.Bot.ReminderTime, "%d:%d", &hour, &m); err != nil {
				b.logger.Error().Err(err).Str("reminder_time", b.config.Bot.ReminderTime).Msg("Invalid reminder time format")
				return
			}
		}

		// First wait until the next reminder time, then tick every 24h.
		timer := time.NewTimer(timeUntilNextHour(hour))
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				b.sendTodayReminders(ctx)
				timer.Reset(24 * time.Hour)
			}
		}
	}()
}

// sendTodayReminders messages everyone who is booked for a duty today.
func (b *Bot) sendTodayReminders(ctx context.Context) {
	now := time.Now()
	today := now.Format(callbackDateLayout)

	for _, duty := range []string{models.DutyTrash, models.DutyCoffee} {
		bookings, err := b.bookingService.AllBookings(ctx, duty)
		if err != nil {
			b.logger.Error().Err(err).Str("duty", duty).Msg("reminder: load bookings error")
			continue
		}

		for _, booking := range bookings {
			// Stored dates are timezone-less; compare the calendar day.
			if booking.Date.Format(callbackDateLayout) != today {
				continue
			}

			msg := tgbotapi.NewMessage(booking.UserID, b.reminderText(ctx, duty, now))
			if _, err := b.tgService.Send(msg); err != nil {
				// Users who never started a private chat with the bot are unreachable.
				b.logger.Warn().Err(err).Int64("user_id", booking.UserID).Msg("reminder: send error")
			}
		}
	}
}

func (b *Bot) reminderText(ctx context.Context, duty string, date time.Time) string {
	if duty == models.DutyCoffee {
		return "Promemoria: oggi sei prenotato per pulire la macchina del caffè!"
	}

	trashTypes, err := b.scheduleService.TrashTypes(ctx, weekdayIndex(date))
	if err != nil {
		trashTypes = models.NoCollection
	}
	return fmt.Sprintf("Promemoria: oggi sei prenotato per portare giù la spazzatura.\nTipo di rifiuti da raccogliere: %s", trashTypes)
}

func timeUntilNextHour(hour int) time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
