package config

import (
	"fmt"
	"time"
)

// TimeSlot is one day's opening window, e.g. {"08:00", "18:00"}
type TimeSlot struct {
	Open   string `yaml:"open"`
	Close  string `yaml:"close"`
	Closed bool   `yaml:"closed"`
}

// WeeklyHours is the opening hours table, one slot per day
type WeeklyHours struct {
	Monday    TimeSlot `yaml:"monday"`
	Tuesday   TimeSlot `yaml:"tuesday"`
	Wednesday TimeSlot `yaml:"wednesday"`
	Thursday  TimeSlot `yaml:"thursday"`
	Friday    TimeSlot `yaml:"friday"`
	Saturday  TimeSlot `yaml:"saturday"`
	Sunday    TimeSlot `yaml:"sunday"`
}

// DayHours pairs a weekday with its slot
type DayHours struct {
	Day  time.Weekday
	Slot TimeSlot
}

// Days returns the table in Monday-first order.
func (w WeeklyHours) Days() []DayHours {
	return []DayHours{
		{time.Monday, w.Monday},
		{time.Tuesday, w.Tuesday},
		{time.Wednesday, w.Wednesday},
		{time.Thursday, w.Thursday},
		{time.Friday, w.Friday},
		{time.Saturday, w.Saturday},
		{time.Sunday, w.Sunday},
	}
}

// For returns the slot of a weekday.
func (w WeeklyHours) For(day time.Weekday) TimeSlot {
	for _, d := range w.Days() {
		if d.Day == day {
			return d.Slot
		}
	}
	return TimeSlot{Closed: true}
}

// IsOpenAt reports whether the store is open at t (in t's location).
func (w WeeklyHours) IsOpenAt(t time.Time) bool {
	slot := w.For(t.Weekday())
	if slot.Closed {
		return false
	}
	open, err1 := time.Parse("15:04", slot.Open)
	closing, err2 := time.Parse("15:04", slot.Close)
	if err1 != nil || err2 != nil {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= open.Hour()*60+open.Minute() && minutes < closing.Hour()*60+closing.Minute()
}

func (s TimeSlot) validate() error {
	if s.Closed {
		return nil
	}
	open, err := time.Parse("15:04", s.Open)
	if err != nil {
		return fmt.Errorf("invalid open time %q", s.Open)
	}
	closing, err := time.Parse("15:04", s.Close)
	if err != nil {
		return fmt.Errorf("invalid close time %q", s.Close)
	}
	if !closing.After(open) {
		return fmt.Errorf("close time %s is not after open time %s", s.Close, s.Open)
	}
	return nil
}
