package bot

import (
	"errors"

	"turni/internal/database"
)

func (b *Bot) getErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, database.ErrPastDate) {
		return "⚠️ Non puoi prenotarti per una data già passata."
	}

	if errors.Is(err, database.ErrDateTooFar) {
		return "⚠️ Puoi prenotarti solo per questa settimana o per la prossima."
	}

	if errors.Is(err, database.ErrInvalidWeekday) {
		return "⚠️ Giorno non valido. Riprova."
	}

	return "❌ Si è verificato un errore. Riprova più tardi."
}
