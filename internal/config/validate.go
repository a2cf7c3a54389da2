package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Metrics.validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

func (m *MetricsConfig) validate() error {
	if _, err := time.LoadLocation(m.DayTimezone); err != nil {
		return fmt.Errorf("day_timezone %q: %w", m.DayTimezone, err)
	}
	if m.DefaultDailyGoalHours < 0 || m.DefaultDailyGoalHours > 24 {
		return fmt.Errorf("default_daily_goal_hours must be between 0 and 24 (got %v)", m.DefaultDailyGoalHours)
	}
	if m.TrendMaxRangeDays <= 0 {
		return fmt.Errorf("trend_max_range_days must be > 0 (got %d)", m.TrendMaxRangeDays)
	}
	return nil
}

// DayLocation returns the configured day-bucketing location.
// Validate must have succeeded before calling.
func (m *MetricsConfig) DayLocation() *time.Location {
	loc, err := time.LoadLocation(m.DayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
