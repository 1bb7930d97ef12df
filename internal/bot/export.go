package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"turni/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

// handleExportCommand builds an XLSX dump of all bookings and sends it back
// as a document. Admin only: the export contains every user's history.
func (b *Bot) handleExportCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message

	if !b.userService.IsAdmin(message.Chat.ID, message.From.ID) {
		b.sendMessage(message.Chat.ID, "⛔ Solo gli amministratori possono esportare le prenotazioni.")
		return
	}

	filePath, err := b.exportToExcel(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("export error")
		b.sendMessage(message.Chat.ID, b.getErrorMessage(err))
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FilePath(filePath))
	doc.Caption = "Esportazione delle prenotazioni"
	if _, err := b.tgService.Send(doc); err != nil {
		b.logger.Error().Err(err).Str("file_path", filePath).Msg("send export error")
	}
}

// exportToExcel writes one sheet per duty kind, every booking as a row.
func (b *Bot) exportToExcel(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		duty string
		name string
	}{
		{models.DutyTrash, "Spazzatura"},
		{models.DutyCoffee, "Caffè"},
	}

	for i, sheet := range sheets {
		index, err := f.NewSheet(sheet.name)
		if err != nil {
			return "", fmt.Errorf("error creating sheet: %w", err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}

		if err := b.writeBookingSheet(ctx, f, sheet.name, sheet.duty); err != nil {
			return "", err
		}
	}

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("prenotazioni_%s.xlsx", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(b.config.Exports.Path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	b.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}

func (b *Bot) writeBookingSheet(ctx context.Context, f *excelize.File, sheetName, duty string) error {
	bookings, err := b.bookingService.AllBookings(ctx, duty)
	if err != nil {
		return fmt.Errorf("error getting bookings: %w", err)
	}

	headers := []string{"ID", "Data", "Giorno", "Nome", "User ID", "Creato il"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, booking := range bookings {
		row := i + 2
		dayName := ""
		if idx := weekdayIndex(booking.Date); idx >= 0 {
			dayName = models.WeekdayNames[idx]
		}
		values := []interface{}{
			booking.ID,
			booking.Date.Format("02.01.2006"),
			dayName,
			booking.UserName,
			booking.UserID,
			booking.CreatedAt.Format("02.01.2006 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 14)
	_ = f.SetColWidth(sheetName, "D", "D", 30)
	_ = f.SetColWidth(sheetName, "E", "F", 18)

	return nil
}
