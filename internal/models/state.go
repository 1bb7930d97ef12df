package models

import "time"

// UserState is the explicit tagged state of one in-progress conversation,
// keyed by (chat, user) so the same person can run independent flows in
// different chats.
type UserState struct {
	ChatID int64                  `json:"chat_id"`
	UserID int64                  `json:"user_id"`
	Step   string                 `json:"step"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// GetInt returns an int value from Data, tolerating the float64 that JSON
// round-trips through redis produce.
func (s *UserState) GetInt(key string) (int, bool) {
	if s == nil || s.Data == nil {
		return 0, false
	}
	switch v := s.Data[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func (s *UserState) GetString(key string) string {
	if s == nil || s.Data == nil {
		return ""
	}
	if v, ok := s.Data[key].(string); ok {
		return v
	}
	return ""
}

func (s *UserState) GetDate(key string) time.Time {
	if s == nil || s.Data == nil {
		return time.Time{}
	}
	switch v := s.Data[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
