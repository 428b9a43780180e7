package model

import "gorm.io/gorm"

const (
	UnitMinutes = "MINUTES"
	UnitHours   = "HOURS"
	UnitDays    = "DAYS"
)

// Setting is a singleton row holding the auto-approval window: a
// PENDING record older than amount*unit is approved automatically.
type Setting struct {
	gorm.Model
	AutoApproveAmount int    `json:"autoApproveAmount"`
	AutoApproveUnit   string `json:"autoApproveUnit" gorm:"default:DAYS"`
}

func ValidUnit(u string) bool {
	return u == UnitMinutes || u == UnitHours || u == UnitDays
}
