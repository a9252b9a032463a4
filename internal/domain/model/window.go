package model

import "time"

// WindowUnit is the unit of a look-back window used when listing recent orders.
type WindowUnit string

const (
	WindowMinutes WindowUnit = "minutes"
	WindowHours   WindowUnit = "hours"
	WindowDays    WindowUnit = "days"
	WindowWeeks   WindowUnit = "weeks"
)

var windowUnits = map[WindowUnit]time.Duration{
	WindowMinutes: time.Minute,
	WindowHours:   time.Hour,
	WindowDays:    24 * time.Hour,
	WindowWeeks:   7 * 24 * time.Hour,
}

// Duration returns amount*unit, or false for an unknown unit.
func (u WindowUnit) Duration(amount int) (time.Duration, bool) {
	step, ok := windowUnits[u]
	if !ok {
		return 0, false
	}
	return time.Duration(amount) * step, true
}
