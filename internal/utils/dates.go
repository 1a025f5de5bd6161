package utils

import (
  "time"
)

// DayOf truncates t to midnight UTC of its calendar day.
func DayOf(t time.Time) time.Time {
  t = t.UTC()
  return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay returns midnight UTC of the day after t.
func NextDay(t time.Time) time.Time {
  return DayOf(t).AddDate(0, 0, 1)
}

// PrevDay returns midnight UTC of the day before t.
func PrevDay(t time.Time) time.Time {
  return DayOf(t).AddDate(0, 0, -1)
}

// YesterdayUTC is the default reference date for pipeline runs.
func YesterdayUTC() time.Time {
  return PrevDay(time.Now().UTC())
}

// DaysBetween returns the whole calendar days from start to end,
// ignoring time-of-day on both ends. Negative when end precedes start.
func DaysBetween(start, end time.Time) int {
  return int(DayOf(end).Sub(DayOf(start)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
  return DayOf(a).Equal(DayOf(b))
}
