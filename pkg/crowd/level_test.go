package crowd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		given    int
		expected Level
		label    string
		severity string
	}{
		{0, LowLevel, "Low", "green"},
		{50, LowLevel, "Low", "green"},
		{51, ModerateLevel, "Moderate", "yellow"},
		{120, ModerateLevel, "Moderate", "yellow"},
		{121, HighLevel, "High", "red"},
		{5000, HighLevel, "High", "red"},
	}

	for _, test := range tests {
		level := ClassifyLevel(test.given)
		assert.Equal(t, test.expected, level, "crowd[%v]", test.given)
		assert.Equal(t, test.label, level.Label())
		assert.Equal(t, test.severity, level.Severity())
	}
}

func TestClassifyLevel_Partition(t *testing.T) {
	seen := map[Level]int{}
	previous := LowLevel
	for crowd := 0; crowd <= 500; crowd++ {
		level := ClassifyLevel(crowd)
		assert.Contains(t, []Level{LowLevel, ModerateLevel, HighLevel}, level)
		assert.True(t, level >= previous, "level dropped at crowd[%v]", crowd)
		previous = level
		seen[level]++
	}
	assert.Equal(t, 51, seen[LowLevel])
	assert.Equal(t, 70, seen[ModerateLevel])
	assert.Equal(t, 380, seen[HighLevel])
}

func TestLevel_Emoji(t *testing.T) {
	assert.Equal(t, "🟢", LowLevel.Emoji())
	assert.Equal(t, "🟡", ModerateLevel.Emoji())
	assert.Equal(t, "🔴", HighLevel.Emoji())
	assert.Equal(t, "Moderate", ModerateLevel.String())
}

func TestWaitMinutes(t *testing.T) {
	tests := []struct {
		given    int
		expected int
	}{
		{-5, 0},
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{90, 60},
		{91, 60},
		{92, 61},
		{150, 100},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, WaitMinutes(test.given, 3, 2), "crowd[%v]", test.given)
	}

	for crowd := 0; crowd <= 1000; crowd++ {
		assert.GreaterOrEqual(t, WaitMinutes(crowd, 3, 2), 0)
	}

	assert.Equal(t, 0, WaitMinutes(10, 0, 2))
}
