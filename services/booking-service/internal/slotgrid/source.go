package slotgrid

import "time"

// Source decides the initial availability of a generated slot.
type Source interface {
	Available(day time.Time, hour int) bool
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(day time.Time, hour int) bool

func (f SourceFunc) Available(day time.Time, hour int) bool {
	return f(day, hour)
}

// DayHours is one weekday's bookable window. Close is the last bookable
// hour, inclusive. The zero value means closed all day.
type DayHours struct {
	Open  int
	Close int
}

// HoursSource derives initial slot availability from provider business
// hours, indexed by time.Weekday.
type HoursSource struct {
	Hours [7]DayHours
}

// DefaultHours is Monday through Saturday 08:00-18:00, closed Sunday.
func DefaultHours() HoursSource {
	var s HoursSource
	for d := time.Monday; d <= time.Saturday; d++ {
		s.Hours[d] = DayHours{Open: FirstHour, Close: LastHour}
	}
	return s
}

func (s HoursSource) Available(day time.Time, hour int) bool {
	h := s.Hours[day.Weekday()]
	if h.Open == 0 && h.Close == 0 {
		return false
	}
	return hour >= h.Open && hour <= h.Close
}
