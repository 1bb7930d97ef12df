package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// scheduleFile mirrors configs/schedule.yaml.
type scheduleFile struct {
	Schedule []scheduleEntry `yaml:"schedule"`
}

type scheduleEntry struct {
	Weekday    int    `yaml:"weekday"`
	TrashTypes string `yaml:"trash_types"`
}

// LoadScheduleSeed reads the default weekday -> trash types mapping used to
// populate the schedule table on first startup.
func LoadScheduleSeed(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse schedule seed: %w", err)
	}

	seed := make(map[int]string, len(file.Schedule))
	for _, entry := range file.Schedule {
		if entry.Weekday < 0 || entry.Weekday > 4 {
			return nil, fmt.Errorf("schedule seed: weekday %d out of range 0..4", entry.Weekday)
		}
		if _, dup := seed[entry.Weekday]; dup {
			return nil, fmt.Errorf("schedule seed: duplicate weekday %d", entry.Weekday)
		}
		seed[entry.Weekday] = entry.TrashTypes
	}
	return seed, nil
}
