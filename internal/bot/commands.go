package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RegisterCommands publishes the command list shown in the Telegram client.
func (b *Bot) RegisterCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Avvia il bot"},
		{Command: "prenota", Description: "Prenota un giorno per portare giù la spazzatura"},
		{Command: "caffe", Description: "Prenota un giorno per pulire la macchina del caffè"},
		{Command: "cancella", Description: "Cancella una tua prenotazione"},
		{Command: "visualizza", Description: "Visualizza tutte le prenotazioni"},
		{Command: "calendario", Description: "Visualizza il calendario della raccolta differenziata"},
		{Command: "leaderboard", Description: "Visualizza la classifica delle prenotazioni"},
		{Command: "configura", Description: "Configura i tipi di spazzatura per ogni giorno"},
		{Command: "annulla", Description: "Annulla l'operazione in corso"},
		{Command: "aiuto", Description: "Mostra il messaggio di aiuto"},
	}

	cfg := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.tgService.Request(cfg); err != nil {
		return err
	}
	return nil
}
