package bot

import (
	"strings"
	"testing"
	"time"

	"turni/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDaySection(t *testing.T) {
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC) // Wednesday

	section := renderDaySection(date, "Carta", []string{"Anna", "Marco"}, nil)

	assert.Contains(t, section, "*Mercoledì 05/03*")
	assert.Contains(t, section, "*Spazzatura:* Carta")
	assert.Contains(t, section, "• Anna")
	assert.Contains(t, section, "• Marco")
	assert.Contains(t, section, "• Nessuno prenotato per la macchina del caffè")
	assert.NotContains(t, section, "Nessuno prenotato per la spazzatura")
}

func TestRenderDaySectionEmptyRosters(t *testing.T) {
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	section := renderDaySection(date, "", nil, nil)

	assert.Contains(t, section, "• Nessuno prenotato per la spazzatura")
	assert.Contains(t, section, "• Nessuno prenotato per la macchina del caffè")
	assert.NotContains(t, section, "*Spazzatura:*")
}

func TestRenderRostersMidweek(t *testing.T) {
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC) // Wednesday
	schedule := map[int]string{2: "Carta", 3: "Organico"}
	trash := map[string][]string{"2025-03-05": {"Anna"}}
	coffee := map[string][]string{"2025-03-10": {"Bruno"}}

	out := renderRosters(now, schedule, trash, coffee)

	assert.Contains(t, out, "📋 *Prenotazioni:*")
	assert.Contains(t, out, "*🗓️ QUESTA SETTIMANA:*")
	assert.Contains(t, out, "*🗓️ SETTIMANA PROSSIMA:*")
	assert.Contains(t, out, "• Anna")
	assert.Contains(t, out, "• Bruno")
	// The current week starts from today, not Monday.
	assert.NotContains(t, out, "Lunedì 03/03")
	assert.Contains(t, out, "Mercoledì 05/03")
	assert.Contains(t, out, "Lunedì 10/03")
	assert.Contains(t, out, "Venerdì 14/03")
}

func TestRenderRostersWeekendSkipsCurrentWeek(t *testing.T) {
	now := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC) // Saturday

	out := renderRosters(now, nil, nil, nil)

	assert.NotContains(t, out, "*🗓️ QUESTA SETTIMANA:*")
	assert.Contains(t, out, "*🗓️ SETTIMANA PROSSIMA:*")
	assert.Contains(t, out, "Lunedì 10/03")
}

func TestRenderCalendar(t *testing.T) {
	now := time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC) // Thursday
	schedule := map[int]string{0: "Indifferenziato", 3: "Organico"}

	out := renderCalendar(now, schedule, nil, nil)

	assert.Contains(t, out, "📅 *Calendario settimanale della raccolta differenziata:*")
	assert.Contains(t, out, "*Lunedì*: Indifferenziato")
	assert.Contains(t, out, "*Giovedì*: Organico")
	// Unconfigured weekdays show the sentinel.
	assert.Contains(t, out, "*Martedì*: "+models.NoCollection)
	assert.Contains(t, out, "📌 *Prenotazioni rimanenti per questa settimana:*")
	assert.Contains(t, out, "Giovedì 06/03")
	assert.Contains(t, out, "Venerdì 07/03")
	assert.NotContains(t, out, "Mercoledì 05/03")
}

func TestRenderCalendarOnWeekend(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) // Sunday

	out := renderCalendar(now, nil, nil, nil)

	assert.Contains(t, out, "Non ci sono più giorni lavorativi rimanenti in questa settimana.")
}

func TestRenderLeaderboard(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserName: "Anna", TrashCount: 3, CoffeeCount: 0, Total: 3},
		{UserName: "Bruno", TrashCount: 1, CoffeeCount: 2, Total: 3},
	}

	out := renderLeaderboard(entries)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "1. Anna — 3 totali (🗑 3, ☕ 0)", lines[len(lines)-2])
	assert.Equal(t, "2. Bruno — 3 totali (🗑 1, ☕ 2)", lines[len(lines)-1])
}

func TestRenderLeaderboardEmpty(t *testing.T) {
	out := renderLeaderboard(nil)
	assert.Contains(t, out, "Nessuna prenotazione registrata finora.")
}
