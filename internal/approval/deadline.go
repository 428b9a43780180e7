package approval

import (
	"time"

	"timeclass-backend/internal/model"
)

// Severity bands for a running countdown, derived from whole days
// remaining: more than one day is nominal, exactly one day warns,
// under a day is urgent, and a passed deadline is expired.
type Severity int

const (
	SeverityExpired Severity = iota
	SeverityUrgent
	SeverityWarning
	SeverityNominal
)

func (s Severity) String() string {
	switch s {
	case SeverityExpired:
		return "EXPIRED"
	case SeverityUrgent:
		return "URGENT"
	case SeverityWarning:
		return "WARNING"
	default:
		return "NOMINAL"
	}
}

// Window converts an auto-approval setting into a duration. Zero and
// unknown units report false, which callers treat as "no deadline".
func Window(amount int, unit string) (time.Duration, bool) {
	if amount <= 0 {
		return 0, false
	}
	switch unit {
	case model.UnitMinutes:
		return time.Duration(amount) * time.Minute, true
	case model.UnitHours:
		return time.Duration(amount) * time.Hour, true
	case model.UnitDays:
		return time.Duration(amount) * 24 * time.Hour, true
	}
	return 0, false
}

// Deadline computes the absolute auto-approval instant for a record
// created at createdAt.
func Deadline(createdAt time.Time, amount int, unit string) (time.Time, bool) {
	window, ok := Window(amount, unit)
	if !ok {
		return time.Time{}, false
	}
	return createdAt.Add(window), true
}

// Band maps remaining time to its severity.
func Band(remaining time.Duration) Severity {
	if remaining <= 0 {
		return SeverityExpired
	}
	days := int(remaining.Hours() / 24)
	switch {
	case days > 1:
		return SeverityNominal
	case days == 1:
		return SeverityWarning
	default:
		return SeverityUrgent
	}
}

// Nearest returns the minimum deadline across the PENDING records,
// which is what a single countdown display tracks when several
// records are awaiting approval.
func Nearest(records []model.WorkHour, amount int, unit string) (time.Time, bool) {
	var nearest time.Time
	found := false
	for _, r := range records {
		if r.Status != model.StatusPending {
			continue
		}
		d, ok := Deadline(r.CreatedAt, amount, unit)
		if !ok {
			continue
		}
		if !found || d.Before(nearest) {
			nearest = d
			found = true
		}
	}
	return nearest, found
}
