package msg

type EventCode uint

const (
	// Client -> server, switch the location being watched.
	SubscribeCode EventCode = 1000

	// Server -> client, current status of the watched location.
	StatusCode EventCode = 1001

	// Server -> client, the request could not be served.
	ErrorCode EventCode = 1002
)

type SubscribeClientEvent struct {
	Location string `json:"location"`
}

type StatusServerEvent struct {
	Location      string `json:"location"`
	ExpectedCrowd int    `json:"expectedCrowd"`
	Level         string `json:"level"`
	Severity      string `json:"severity"`
	LevelEmoji    string `json:"levelEmoji"`
	WaitMinutes   int    `json:"waitMinutes"`
	BestTime      string `json:"bestTime"`
}

type ErrorServerEvent struct {
	Message string `json:"message"`
}
