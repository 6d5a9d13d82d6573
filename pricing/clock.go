package pricing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const layoutClock = "15:04"

// TimeOfDay is a wall-clock time without a date, as entered on the event form. The zero
// value is an unset time.
type TimeOfDay struct {
	minutes int
	set     bool
}

// ParseTimeOfDay parses "HH:MM". An empty string yields an unset time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, nil
	}
	t, err := time.Parse(layoutClock, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute(), set: true}, nil
}

// MustTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) IsSet() bool { return t.set }

func (t TimeOfDay) String() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DurationHours is the billable length of an event: end minus start, wrapped past
// midnight when end is earlier than start, rounded up to whole hours. Zero when either
// end is unset.
func DurationHours(start, end TimeOfDay) int {
	if !start.set || !end.set {
		return 0
	}
	diff := end.minutes - start.minutes
	if diff < 0 {
		diff += 24 * 60
	}
	return (diff + 59) / 60
}
