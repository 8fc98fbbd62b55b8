package crowd

import (
	"fmt"
	"qsmart/qsmart-crowd-server/pkg/config"
	"time"
	_ "time/tzdata"
)

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed time zone, which decides
// the weekday and hour used against the baseline.
type SystemClock struct {
	location *time.Location
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.location)
}

func ProvideClock(config *config.Config) (Clock, error) {
	location, err := time.LoadLocation(*config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone[%v]: %w", *config.Timezone, err)
	}
	return &SystemClock{location: location}, nil
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}
