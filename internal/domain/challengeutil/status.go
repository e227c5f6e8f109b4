package challengeutil

import (
	"fmt"
	"time"
)

type StatusValue string

const (
	StatusOpen   StatusValue = "open"
	StatusClosed StatusValue = "closed"
)

func ToStatusValue(s string) (StatusValue, error) {
	switch StatusValue(s) {
	case StatusOpen, StatusClosed:
		return StatusValue(s), nil
	}

	return "", fmt.Errorf("invalid status %q", s)
}

// Status is the open or closed state of a challenge. Persisted is set when the
// value comes from the stored is_closed flag rather than from capacity and
// deadline.
type Status struct {
	Value     StatusValue
	Persisted bool
}

func (s Status) String() string {
	return string(s.Value)
}

func (s Status) IsClosed() bool {
	return s.Value == StatusClosed
}

// DeriveStatus is closed when every seat is taken or the deadline is not after
// now.
func DeriveStatus(participantCount, maxParticipant int, deadline, now time.Time) StatusValue {
	if participantCount >= maxParticipant || !deadline.After(now) {
		return StatusClosed
	}

	return StatusOpen
}

// ResolveStatus prefers the persisted flag over the derived value once it is
// set.
func ResolveStatus(isClosed bool, participantCount, maxParticipant int, deadline, now time.Time) Status {
	if isClosed {
		return Status{Value: StatusClosed, Persisted: true}
	}

	return Status{Value: DeriveStatus(participantCount, maxParticipant, deadline, now)}
}
