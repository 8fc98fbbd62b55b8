package crowd

type Level uint

const (
	LowLevel Level = iota
	ModerateLevel
	HighLevel
)

const (
	// Upper bounds, inclusive.
	lowCrowdLimit      = 50
	moderateCrowdLimit = 120
)

func ClassifyLevel(crowd int) Level {
	switch {
	case crowd <= lowCrowdLimit:
		return LowLevel
	case crowd <= moderateCrowdLimit:
		return ModerateLevel
	default:
		return HighLevel
	}
}

func (l Level) Label() string {
	switch l {
	case LowLevel:
		return "Low"
	case ModerateLevel:
		return "Moderate"
	default:
		return "High"
	}
}

func (l Level) Severity() string {
	switch l {
	case LowLevel:
		return "green"
	case ModerateLevel:
		return "yellow"
	default:
		return "red"
	}
}

func (l Level) Emoji() string {
	switch l {
	case LowLevel:
		return "🟢"
	case ModerateLevel:
		return "🟡"
	default:
		return "🔴"
	}
}

func (l Level) String() string {
	return l.Label()
}

// WaitMinutes is how long the crowd takes to clear when counters serve
// in parallel and each person takes avgServiceMinutes. Truncated to
// whole minutes.
func WaitMinutes(crowd int, counters int, avgServiceMinutes int) int {
	if crowd <= 0 || counters <= 0 {
		return 0
	}
	return crowd * avgServiceMinutes / counters
}
