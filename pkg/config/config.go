package config

import (
	"flag"
	"fmt"
	"time"
)

type Config struct {
	RetentionMinutes *int

	ServiceCounters   *int
	AvgServiceMinutes *int

	BaselineSource *string

	RegistrationStore *string
	SqlitePath        *string

	Timezone *string

	NotifyStatusIntervalSeconds *int
	PingIntervalSeconds         *int
}

const (
	StoreSqlite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

var CFG = NewConfig(flag.CommandLine)

// NewConfig registers every option on fs with its default value.
func NewConfig(fs *flag.FlagSet) *Config {
	return &Config{
		RetentionMinutes:            fs.Int("retention-minutes", 240, "Registrations older than this are removed by the sweeper and stop counting toward the expected crowd."),
		ServiceCounters:             fs.Int("service-counters", 3, "Assumed number of counters serving a location in parallel."),
		AvgServiceMinutes:           fs.Int("avg-service-minutes", 2, "Average minutes spent serving one person."),
		BaselineSource:              fs.String("baseline-source", "data/baseline_crowd.csv", "Path or http(s) url of the baseline crowd csv (location,day,hour,baseline_crowd)."),
		RegistrationStore:           fs.String("registration-store", StoreSqlite, "Where queue registrations are kept: sqlite, redis or memory."),
		SqlitePath:                  fs.String("sqlite-path", "data/data.db", "SQLite database file used by the sqlite registration store."),
		Timezone:                    fs.String("timezone", "Local", "IANA time zone used to decide the current weekday and hour."),
		NotifyStatusIntervalSeconds: fs.Int("notify-status-interval-seconds", 30, "Interval to push location status to websocket subscribers."),
		PingIntervalSeconds:         fs.Int("ping-interval-seconds", 30, "Send pings to websocket peer with this interval."),
	}
}

func ProvideConfig() (*Config, error) {
	if !flag.Parsed() {
		flag.Parse()
	}
	if err := CFG.Validate(); err != nil {
		return nil, err
	}
	return CFG, nil
}

func (c *Config) Validate() error {
	if *c.RetentionMinutes <= 0 {
		return fmt.Errorf("retention-minutes[%v] must be positive", *c.RetentionMinutes)
	}
	if *c.ServiceCounters <= 0 {
		return fmt.Errorf("service-counters[%v] must be positive", *c.ServiceCounters)
	}
	if *c.AvgServiceMinutes < 0 {
		return fmt.Errorf("avg-service-minutes[%v] must not be negative", *c.AvgServiceMinutes)
	}
	if *c.NotifyStatusIntervalSeconds <= 0 || *c.PingIntervalSeconds <= 0 {
		return fmt.Errorf("notify-status-interval-seconds[%v] and ping-interval-seconds[%v] must be positive",
			*c.NotifyStatusIntervalSeconds, *c.PingIntervalSeconds)
	}
	switch *c.RegistrationStore {
	case StoreSqlite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown registration-store[%v]", *c.RegistrationStore)
	}
	return nil
}

func (c *Config) RetentionWindow() time.Duration {
	return time.Duration(*c.RetentionMinutes) * time.Minute
}

func (c *Config) NotifyStatusInterval() time.Duration {
	return time.Duration(*c.NotifyStatusIntervalSeconds) * time.Second
}

func (c *Config) PingInterval() time.Duration {
	return time.Duration(*c.PingIntervalSeconds) * time.Second
}
