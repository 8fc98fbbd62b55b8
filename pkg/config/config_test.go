package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(flag.NewFlagSet("test", flag.ContinueOnError))

	assert.Equal(t, 4*time.Hour, cfg.RetentionWindow())
	assert.Equal(t, 3, *cfg.ServiceCounters)
	assert.Equal(t, 2, *cfg.AvgServiceMinutes)
	assert.Equal(t, StoreSqlite, *cfg.RegistrationStore)
	assert.Equal(t, 30*time.Second, cfg.NotifyStatusInterval())
	assert.Equal(t, 30*time.Second, cfg.PingInterval())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		given []string
		valid bool
	}{
		{[]string{"-service-counters", "5", "-avg-service-minutes", "0"}, true},
		{[]string{"-registration-store", "redis"}, true},
		{[]string{"-service-counters", "0"}, false},
		{[]string{"-avg-service-minutes", "-1"}, false},
		{[]string{"-retention-minutes", "0"}, false},
		{[]string{"-ping-interval-seconds", "0"}, false},
		{[]string{"-registration-store", "mongo"}, false},
	}

	for _, test := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		cfg := NewConfig(fs)
		require.NoError(t, fs.Parse(test.given))

		if test.valid {
			assert.NoError(t, cfg.Validate(), "%v", test.given)
		} else {
			assert.Error(t, cfg.Validate(), "%v", test.given)
		}
	}
}
