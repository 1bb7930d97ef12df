package models

const (
	DutyTrash  = "trash"
	DutyCoffee = "coffee"
)

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

// Conversation steps. One step per in-flight multi-message flow; flows that
// finish in a single callback press clear the state instead.
const (
	StateSelectTrashDate  = "select_trash_date"
	StateSelectCoffeeDate = "select_coffee_date"
	StateCancelChooseDuty = "cancel_choose_duty"
	StateCancelChooseDate = "cancel_choose_date"
	StateConfigSelectDay  = "config_select_day"
	StateConfigEnterTypes = "config_enter_types"
)

const (
	// DefaultStateTTL lifetime of a conversation state in seconds
	DefaultStateTTL = 24 * 60 * 60

	// ReminderHour default hour for daily duty reminders
	ReminderHour = 8

	// LeaderboardSize number of entries rendered by /leaderboard
	LeaderboardSize = 10

	// RateLimitMessages messages allowed per window
	RateLimitMessages = 20

	// RateLimitWindow rate limit window in seconds
	RateLimitWindow = 60

	// SyncQueueSize size of the in-memory sheets queue
	SyncQueueSize = 128
)

// NoCollection is returned by the schedule store for weekdays without a
// configured pickup. Callers render it verbatim.
const NoCollection = "Nessuna raccolta"

// WeekdayNames maps weekday index 0..4 (Monday..Friday) to its Italian name.
var WeekdayNames = [5]string{"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì"}

// DutyNames maps a duty kind to its Italian label.
var DutyNames = map[string]string{
	DutyTrash:  "spazzatura",
	DutyCoffee: "macchina del caffè",
}
