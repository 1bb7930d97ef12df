package service

import (
	"context"
	"time"

	"turni/internal/database"
	"turni/internal/domain"
	"turni/internal/events"
	"turni/internal/models"

	"github.com/rs/zerolog"
)

// BookingService implements the duty-booking workflow: candidate date
// enumeration, validation, persistence and event publication.
type BookingService struct {
	repo         domain.Repository
	eventBus     domain.EventPublisher
	syncWorker   domain.SyncWorker
	bookingStore bookingStore
	logger       *zerolog.Logger
}

// bookingStore is the subset of the database used for sheet sync lookups.
type bookingStore interface {
	GetBooking(ctx context.Context, duty string, date time.Time, userID int64) (*models.Booking, error)
}

func NewBookingService(repo domain.Repository, store bookingStore, eventBus domain.EventPublisher, syncWorker domain.SyncWorker, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:         repo,
		bookingStore: store,
		eventBus:     eventBus,
		syncWorker:   syncWorker,
		logger:       logger,
	}
}

// mondayOf returns the Monday of the week containing t, at midnight.
func mondayOf(t time.Time) time.Time {
	weekday := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -weekday)
}

// CandidateDates enumerates the bookable dates: the remainder of the current
// working week (today through Friday) plus Monday..Friday of next week.
// On weekends only next week is offered.
func (s *BookingService) CandidateDates(now time.Time) []time.Time {
	weekday := (int(now.Weekday()) + 6) % 7
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var dates []time.Time
	if weekday <= 4 {
		for d := weekday; d <= 4; d++ {
			dates = append(dates, today.AddDate(0, 0, d-weekday))
		}
	}

	nextMonday := mondayOf(now).AddDate(0, 0, 7)
	for d := 0; d < 5; d++ {
		dates = append(dates, nextMonday.AddDate(0, 0, d))
	}
	return dates
}

// ValidateBookingDate rejects dates outside the candidate window. Callback
// payloads are attacker-controlled, so membership is checked explicitly.
func (s *BookingService) ValidateBookingDate(now, date time.Time) error {
	// Compare calendar days: parsed callback dates are UTC midnight while
	// candidates carry the local zone.
	const layout = "2006-01-02"
	day := date.Format(layout)
	if day < now.Format(layout) {
		return database.ErrPastDate
	}
	for _, candidate := range s.CandidateDates(now) {
		if candidate.Format(layout) == day {
			return nil
		}
	}
	return database.ErrDateTooFar
}

// Book reserves a date. The false return is the duplicate branch: the user is
// already booked and nothing was written.
func (s *BookingService) Book(ctx context.Context, duty string, date time.Time, userID int64, userName string) (bool, error) {
	if err := s.ValidateBookingDate(time.Now(), date); err != nil {
		return false, err
	}

	created, err := s.repo.AddBooking(ctx, duty, date, userID, userName)
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	booking, err := s.bookingStore.GetBooking(ctx, duty, date, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("duty", duty).Int64("user_id", userID).Msg("load booking after insert")
		return true, nil
	}

	s.publishBookingEvent(events.EventBookingCreated, booking)
	if s.syncWorker != nil {
		if err := s.syncWorker.EnqueueAppend(ctx, booking); err != nil {
			s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("sheets enqueue error")
		}
	}
	return true, nil
}

// Cancel deletes the caller's own booking. Unknown bookings are a no-op.
func (s *BookingService) Cancel(ctx context.Context, duty string, date time.Time, userID int64) error {
	booking, err := s.bookingStore.GetBooking(ctx, duty, date, userID)
	if err != nil {
		// Nothing to delete; preserve the no-op contract.
		return s.repo.DeleteBooking(ctx, duty, date, userID)
	}

	if err := s.repo.DeleteBooking(ctx, duty, date, userID); err != nil {
		return err
	}

	s.publishBookingEvent(events.EventBookingCanceled, booking)
	if s.syncWorker != nil {
		if err := s.syncWorker.EnqueueDelete(ctx, booking.ID); err != nil {
			s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("sheets enqueue error")
		}
	}
	return nil
}

func (s *BookingService) RosterForDate(ctx context.Context, duty string, date time.Time) ([]string, error) {
	return s.repo.ListBookingsForDate(ctx, duty, date)
}

func (s *BookingService) RostersInRange(ctx context.Context, duty string, from, to time.Time) (map[string][]string, error) {
	return s.repo.ListBookingsInRange(ctx, duty, from, to)
}

func (s *BookingService) UserBookings(ctx context.Context, duty string, userID int64) ([]time.Time, error) {
	return s.repo.ListUserBookings(ctx, duty, userID)
}

func (s *BookingService) AllBookings(ctx context.Context, duty string) ([]*models.Booking, error) {
	return s.repo.ListAllBookings(ctx, duty)
}

func (s *BookingService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.repo.GetLeaderboard(ctx, models.LeaderboardSize)
}

func (s *BookingService) publishBookingEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil || booking == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		Duty:      booking.Duty,
		Date:      booking.Date,
		UserID:    booking.UserID,
		UserName:  booking.UserName,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
