package slotgrid

import (
	"errors"
	"fmt"
	"time"
)

// The calendar grid covers a rolling window of 7 days with one slot per
// hour from 08:00 to 18:00 inclusive, 11 slots per day.
const (
	WindowDays  = 7
	FirstHour   = 8
	LastHour    = 18
	HoursPerDay = LastHour - FirstHour + 1
)

var ErrSlotNotFound = errors.New("slot not found")

// Slot is a one-hour bookable unit of a service's calendar.
type Slot struct {
	ID        string
	Date      string // YYYY-MM-DD
	Time      string // HH:00
	Available bool
}

// SlotID derives the canonical slot id from its date and hour.
// The hour is zero-padded so ids sort lexically within a day.
func SlotID(date string, hour int) string {
	return fmt.Sprintf("%s-%02d", date, hour)
}

// Generate materializes the full grid starting at ref's calendar date.
// Initial availability comes from src; the shape of the grid does not.
// Callers generate once per service and persist the result.
func Generate(ref time.Time, src Source) []Slot {
	slots := make([]Slot, 0, WindowDays*HoursPerDay)
	for day := 0; day < WindowDays; day++ {
		d := ref.AddDate(0, 0, day)
		date := d.Format("2006-01-02")
		for hour := FirstHour; hour <= LastHour; hour++ {
			slots = append(slots, Slot{
				ID:        SlotID(date, hour),
				Date:      date,
				Time:      fmt.Sprintf("%02d:00", hour),
				Available: src.Available(d, hour),
			})
		}
	}
	return slots
}

// Grid owns one service's slot collection. With Strict set, mutations
// on unknown slot ids report ErrSlotNotFound; otherwise they are
// silent no-ops.
type Grid struct {
	Slots  []Slot
	Strict bool
}

// ForDate returns the slots on date in generation order (ascending hour).
func (g *Grid) ForDate(date string) []Slot {
	var out []Slot
	for _, s := range g.Slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// AvailableForDate returns only the available slots on date.
func (g *Grid) AvailableForDate(date string) []Slot {
	var out []Slot
	for _, s := range g.Slots {
		if s.Date == date && s.Available {
			out = append(out, s)
		}
	}
	return out
}

// Toggle flips availability on the slot with the given id.
func (g *Grid) Toggle(id string) error {
	for i := range g.Slots {
		if g.Slots[i].ID == id {
			g.Slots[i].Available = !g.Slots[i].Available
			return nil
		}
	}
	if g.Strict {
		return ErrSlotNotFound
	}
	return nil
}

// BulkSet sets every slot on date to the given availability. Idempotent.
func (g *Grid) BulkSet(date string, available bool) {
	for i := range g.Slots {
		if g.Slots[i].Date == date {
			g.Slots[i].Available = available
		}
	}
}

// BookOutcome reports the slot state observed by a booking attempt.
// WasAvailable false means the slot was already taken and the caller
// should reject the booking.
type BookOutcome struct {
	Slot         Slot
	WasAvailable bool
}

// Book marks the slot unavailable and reports whether it was available
// beforehand. Booking an unknown id always fails, independent of Strict.
func (g *Grid) Book(id string) (BookOutcome, error) {
	for i := range g.Slots {
		if g.Slots[i].ID == id {
			out := BookOutcome{WasAvailable: g.Slots[i].Available}
			g.Slots[i].Available = false
			out.Slot = g.Slots[i]
			return out, nil
		}
	}
	return BookOutcome{}, ErrSlotNotFound
}
