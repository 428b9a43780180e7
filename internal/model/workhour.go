package model

import "gorm.io/gorm"

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

type WorkHour struct {
	gorm.Model
	TeacherID uint   `json:"teacher_id"`
	Date      string `json:"date"` // Format YYYY-MM-DD

	// Durations as HH:MM strings
	FixedHours  string `json:"fixed_hours"`
	TaughtHours string `json:"taught_hours"`
	Lateness    string `json:"lateness"`

	Status string `json:"status" gorm:"default:PENDING"`

	Teacher Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Claim   *Claim  `json:"claim,omitempty" gorm:"foreignKey:WorkHourID"`
}

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// CanTransition enforces the approval state machine:
//
//	PENDING  -> ACCEPTED  (teacher confirms)
//	PENDING  -> REJECTED  (only through claim creation)
//	REJECTED -> ACCEPTED  (teacher re-confirms; the claim stays open)
//
// A record never returns to PENDING once a claim exists, and ACCEPTED
// is terminal for the approval cycle.
func CanTransition(current, next string, hasClaim bool) bool {
	switch current {
	case StatusPending:
		if next == StatusAccepted {
			return true
		}
		if next == StatusRejected {
			return hasClaim
		}
	case StatusRejected:
		return next == StatusAccepted
	}
	return false
}
