package sml

import (
	"math"
	"time"
)

// oaEpoch is day zero of the OLE Automation calendar, 1899-12-30 UTC.
var oaEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ToOADate converts t to an OLE Automation date serial: whole days since
// 1899-12-30 with the time of day as the fraction. The location of t is
// ignored; the wall-clock fields are taken as-is, which is how spreadsheet
// dates behave (they carry no zone).
func ToOADate(t time.Time) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return wall.Sub(oaEpoch).Seconds() / 86400
}

// FromOADate converts an OLE Automation date serial back to a time.Time in
// UTC, rounded to the nearest millisecond to absorb binary fraction noise.
func FromOADate(serial float64) time.Time {
	ms := math.Round(serial * 86400 * 1000)
	return oaEpoch.Add(time.Duration(ms) * time.Millisecond)
}
