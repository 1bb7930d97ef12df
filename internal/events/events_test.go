package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishJSONReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var got []BookingEventPayload
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		var payload BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		got = append(got, payload)
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{
		BookingID: 1, Duty: "trash", UserID: 7, UserName: "Anna",
	}))

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].BookingID)
	assert.Equal(t, "Anna", got[0].UserName)
}

func TestSubscribersAreFilteredByType(t *testing.T) {
	bus := NewEventBus()

	var created, canceled int
	bus.Subscribe(EventBookingCreated, func(event *Event) error { created++; return nil })
	bus.Subscribe(EventBookingCanceled, func(event *Event) error { canceled++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingCanceled, BookingEventPayload{BookingID: 2}))

	assert.Zero(t, created)
	assert.Equal(t, 1, canceled)
}

func TestNilBusPublishIsNoOp(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventScheduleUpdated, ScheduleEventPayload{Weekday: 2}))
}
