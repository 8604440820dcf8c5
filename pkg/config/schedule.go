package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts five-field expressions and descriptors such as
// "@every 1m" or "@hourly", matching what cron.New schedules by default.
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateCronSchedule returns an error when schedule cannot be parsed.
//
// Example:
//
//	err := ValidateCronSchedule("@every 5m")     // nil
//	err = ValidateCronSchedule("*/15 * * * *")   // nil
//	err = ValidateCronSchedule("every 5 minutes") // error
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}
