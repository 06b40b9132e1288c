package enums

import "fmt"

// TurnTaskStatus tracks the lifecycle of a unit-turn checklist.
type TurnTaskStatus string

const (
	TurnTaskStatusOpen       TurnTaskStatus = "open"
	TurnTaskStatusInProgress TurnTaskStatus = "in_progress"
	TurnTaskStatusDone       TurnTaskStatus = "done"
)

var validTurnTaskStatuses = []TurnTaskStatus{
	TurnTaskStatusOpen,
	TurnTaskStatusInProgress,
	TurnTaskStatusDone,
}

// String implements fmt.Stringer.
func (s TurnTaskStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TurnTaskStatus.
func (s TurnTaskStatus) IsValid() bool {
	for _, candidate := range validTurnTaskStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTurnTaskStatus converts raw input into a TurnTaskStatus.
func ParseTurnTaskStatus(value string) (TurnTaskStatus, error) {
	for _, candidate := range validTurnTaskStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid turn task status %q", value)
}
