package bot

import (
	"fmt"
	"strings"
	"time"

	"turni/internal/models"
)

func renderWelcome(firstName string) string {
	return fmt.Sprintf("Ciao %s! Benvenuto nel bot per la gestione della raccolta differenziata e della macchina del caffè.\n\n%s", firstName, renderHelp())
}

func renderHelp() string {
	return "Comandi disponibili:\n" +
		"/prenota - Prenota un giorno per portare giù la spazzatura\n" +
		"/caffe - Prenota un giorno per pulire la macchina del caffè\n" +
		"/cancella - Cancella una tua prenotazione\n" +
		"/visualizza - Visualizza tutte le prenotazioni attuali\n" +
		"/calendario - Visualizza il calendario della raccolta differenziata e le prenotazioni rimanenti\n" +
		"/leaderboard - Visualizza la classifica delle prenotazioni\n" +
		"/configura - Configura i tipi di spazzatura per ogni giorno (solo amministratori)\n" +
		"/annulla - Annulla l'operazione in corso\n" +
		"/aiuto - Mostra questo messaggio di aiuto"
}

// renderDaySection builds one per-day block: header, schedule line and the
// rosters of both duty kinds.
func renderDaySection(date time.Time, trashTypes string, trashNames, coffeeNames []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n", dayLabel(date)))
	if trashTypes != "" {
		sb.WriteString(fmt.Sprintf("*Spazzatura:* %s\n", trashTypes))
	}

	if len(trashNames) > 0 {
		sb.WriteString("*Prenotati per la spazzatura:*\n")
		for _, name := range trashNames {
			sb.WriteString(fmt.Sprintf("• %s\n", name))
		}
	} else {
		sb.WriteString("• Nessuno prenotato per la spazzatura\n")
	}

	sb.WriteString("*Prenotati per la macchina del caffè:*\n")
	if len(coffeeNames) > 0 {
		for _, name := range coffeeNames {
			sb.WriteString(fmt.Sprintf("• %s\n", name))
		}
	} else {
		sb.WriteString("• Nessuno prenotato per la macchina del caffè\n")
	}

	return sb.String()
}

// renderRosters produces the /visualizza view: the remaining days of the
// current working week followed by all of next week. Roster maps are keyed
// by ISO date.
func renderRosters(now time.Time, schedule map[int]string, trash, coffee map[string][]string) string {
	var sb strings.Builder
	sb.WriteString("📋 *Prenotazioni:*\n\n")

	weekday := weekdayIndex(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if weekday >= 0 {
		sb.WriteString("*🗓️ QUESTA SETTIMANA:*\n\n")
		for idx := weekday; idx <= 4; idx++ {
			date := today.AddDate(0, 0, idx-weekday)
			key := date.Format(callbackDateLayout)
			sb.WriteString(renderDaySection(date, scheduleText(schedule, idx), trash[key], coffee[key]))
			sb.WriteString("\n")
		}
		sb.WriteString("───────────────────\n\n")
	}

	sb.WriteString("*🗓️ SETTIMANA PROSSIMA:*\n\n")
	nextMonday := nextMondayOf(now)
	for idx := 0; idx < 5; idx++ {
		date := nextMonday.AddDate(0, 0, idx)
		key := date.Format(callbackDateLayout)
		sb.WriteString(renderDaySection(date, scheduleText(schedule, idx), trash[key], coffee[key]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderCalendar produces the /calendario view: the fixed weekly schedule
// plus the remaining rosters of the current week.
func renderCalendar(now time.Time, schedule map[int]string, trash, coffee map[string][]string) string {
	var sb strings.Builder
	sb.WriteString("📅 *Calendario settimanale della raccolta differenziata:*\n\n")

	for idx := 0; idx < 5; idx++ {
		sb.WriteString(fmt.Sprintf("*%s*: %s\n", models.WeekdayNames[idx], scheduleText(schedule, idx)))
	}

	sb.WriteString("\n📌 *Prenotazioni rimanenti per questa settimana:*\n\n")

	weekday := weekdayIndex(now)
	if weekday < 0 {
		sb.WriteString("Non ci sono più giorni lavorativi rimanenti in questa settimana.\n")
		return sb.String()
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for idx := weekday; idx <= 4; idx++ {
		date := today.AddDate(0, 0, idx-weekday)
		key := date.Format(callbackDateLayout)
		sb.WriteString(renderDaySection(date, "", trash[key], coffee[key]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderLeaderboard produces the top-10 ranking.
func renderLeaderboard(entries []models.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "🏆 *Classifica:*\n\nNessuna prenotazione registrata finora."
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Classifica:*\n\n")
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d. %s — %d totali (🗑 %d, ☕ %d)\n",
			i+1, entry.UserName, entry.Total, entry.TrashCount, entry.CoffeeCount))
	}
	return sb.String()
}

func scheduleText(schedule map[int]string, weekday int) string {
	if text, ok := schedule[weekday]; ok && text != "" {
		return text
	}
	return models.NoCollection
}

func nextMondayOf(now time.Time) time.Time {
	weekday := (int(now.Weekday()) + 6) % 7
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, 7-weekday)
}
