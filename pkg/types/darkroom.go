package types

import (
	"fmt"
	"time"
)

// Deadline is the develop deadline of a darkroom item as the server or the
// caller supplies it: either an offset from now or an absolute ISO timestamp.
// NewDarkroomMedia resolves it to an absolute time immediately.
type Deadline struct {
	offset time.Duration
	iso    string
	isISO  bool
}

// DevelopIn is a deadline relative to the moment of construction.
func DevelopIn(d time.Duration) Deadline {
	return Deadline{offset: d}
}

// DevelopsAt is an absolute deadline in server ISO format.
func DevelopsAt(iso string) Deadline {
	return Deadline{iso: iso, isISO: true}
}

// Resolve returns the absolute deadline.
func (d Deadline) Resolve(now time.Time) (time.Time, error) {
	if !d.isISO {
		return now.UTC().Add(d.offset), nil
	}
	t, err := ParseISOTime(d.iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("develops at: %w", err)
	}
	return t, nil
}

// NewDarkroomMedia builds a DarkroomMedia, resolving the deadline against now.
func NewDarkroomMedia(id string, takenAt time.Time, deadline Deadline, now time.Time) (*DarkroomMedia, error) {
	if id == "" {
		return nil, fmt.Errorf("darkroom media id is empty")
	}
	at, err := deadline.Resolve(now)
	if err != nil {
		return nil, err
	}
	return &DarkroomMedia{ID: id, TakenAt: takenAt, DevelopsAt: at}, nil
}
