package clock

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// NoTimeMarker is rendered when a time-of-day is absent.
	NoTimeMarker = "00:00"
)

// Clock converts between UTC instants and a fixed-offset local civil calendar.
// The offset never changes (no daylight saving rules are applied).
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New builds a Clock for the given UTC offset. A nil now func falls back to time.Now.
func New(offset time.Duration, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		loc: time.FixedZone(zoneName(offset), int(offset/time.Second)),
		now: now,
	}
}

// FromMinutes is New with the offset expressed in minutes, e.g. -240 for UTC-4.
func FromMinutes(minutes int, now func() time.Time) *Clock {
	return New(time.Duration(minutes)*time.Minute, now)
}

func zoneName(offset time.Duration) string {
	if offset == 0 {
		return "UTC"
	}
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	if m == 0 {
		return fmt.Sprintf("UTC%s%d", sign, h)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, h, m)
}

// Location returns the fixed zone used for local calendar fields.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// ToLocal is only meant for reading calendar fields; never compare its result against stored instants.
func (c *Clock) ToLocal(t time.Time) time.Time {
	return t.In(c.loc)
}

func (c *Clock) LocalDateKey(t time.Time) string {
	return c.ToLocal(t).Format(DateLayout)
}

// LocalTimeOfDay renders HH:MM in local time, or NoTimeMarker when t is nil.
func (c *Clock) LocalTimeOfDay(t *time.Time) string {
	if t == nil {
		return NoTimeMarker
	}
	return c.ToLocal(*t).Format(TimeLayout)
}

// StartOfLocalDay returns the UTC instant of 00:00 local on t's local date.
func (c *Clock) StartOfLocalDay(t time.Time) time.Time {
	y, m, d := c.ToLocal(t).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc).UTC()
}

// EndOfLocalDayExclusive is the exclusive upper bound of t's local day.
func (c *Clock) EndOfLocalDayExclusive(t time.Time) time.Time {
	return c.StartOfLocalDay(t).Add(24 * time.Hour)
}

// StartOfLocalMonth returns the UTC instant of the first local midnight of t's local month.
func (c *Clock) StartOfLocalMonth(t time.Time) time.Time {
	y, m, _ := c.ToLocal(t).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, c.loc).UTC()
}

// LocalWeekday returns 1 (Monday) through 7 (Sunday).
func (c *Clock) LocalWeekday(t time.Time) int {
	wd := c.ToLocal(t).Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

func (c *Clock) IsWeekend(t time.Time) bool {
	return c.LocalWeekday(t) >= 6
}

// ParseLocalDate reads a YYYY-MM-DD local calendar date and returns the UTC instant of its local midnight.
func (c *Clock) ParseLocalDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, c.loc)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}
