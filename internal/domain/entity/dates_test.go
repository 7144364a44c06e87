package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 8, 20, 23, 45, 12, 999, time.Local)
	day := DateOnly(ts)

	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.August, day.Month())
	assert.Equal(t, 20, day.Day())
	assert.Zero(t, day.Hour())
	assert.Zero(t, day.Minute())
	assert.Zero(t, day.Second())
	assert.Zero(t, day.Nanosecond())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 8, 20, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, 8, 20, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2026, 8, 21, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))

	// same day number in a different month is a different day
	otherMonth := time.Date(2026, 7, 20, 12, 0, 0, 0, time.Local)
	assert.False(t, SameDay(morning, otherMonth))
}

func TestNapDurationMinutes(t *testing.T) {
	start := time.Date(2026, 8, 20, 13, 0, 0, 0, time.Local)
	end := start.Add(45 * time.Minute)

	nap := Nap{StartTime: start, EndTime: &end}
	assert.InDelta(t, 45, nap.DurationMinutes(), 1e-9)
	assert.False(t, nap.Active())

	active := Nap{StartTime: start}
	assert.Zero(t, active.DurationMinutes())
	assert.True(t, active.Active())
}
