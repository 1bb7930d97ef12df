package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScheduleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScheduleSeed(t *testing.T) {
	path := writeScheduleFile(t, `schedule:
  - weekday: 0
    trash_types: "Indifferenziato"
  - weekday: 4
    trash_types: "Vetro, Organico, Plastica"
`)

	seed, err := LoadScheduleSeed(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "Indifferenziato", 4: "Vetro, Organico, Plastica"}, seed)
}

func TestLoadScheduleSeedRejectsOutOfRangeWeekday(t *testing.T) {
	path := writeScheduleFile(t, `schedule:
  - weekday: 5
    trash_types: "Carta"
`)

	_, err := LoadScheduleSeed(path)
	assert.ErrorContains(t, err, "out of range")
}

func TestLoadScheduleSeedRejectsDuplicateWeekday(t *testing.T) {
	path := writeScheduleFile(t, `schedule:
  - weekday: 1
    trash_types: "Carta"
  - weekday: 1
    trash_types: "Organico"
`)

	_, err := LoadScheduleSeed(path)
	assert.ErrorContains(t, err, "duplicate weekday")
}

func TestLoadScheduleSeedMissingFile(t *testing.T) {
	_, err := LoadScheduleSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
