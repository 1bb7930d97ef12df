package bot

import (
	"fmt"
	"time"

	"turni/internal/models"
)

const callbackDateLayout = "2006-01-02"

// weekdayIndex maps a date to the 0..4 Monday..Friday index, -1 on weekends.
func weekdayIndex(t time.Time) int {
	idx := (int(t.Weekday()) + 6) % 7
	if idx > 4 {
		return -1
	}
	return idx
}

// dayLabel renders a date as "Lunedì 25/02".
func dayLabel(t time.Time) string {
	idx := weekdayIndex(t)
	if idx < 0 {
		return t.Format("02/01")
	}
	return fmt.Sprintf("%s %s", models.WeekdayNames[idx], t.Format("02/01"))
}

func parseCallbackDate(raw string) (time.Time, error) {
	return time.Parse(callbackDateLayout, raw)
}
