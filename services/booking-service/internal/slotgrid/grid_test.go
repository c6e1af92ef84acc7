package slotgrid

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

// weightedRandomSource mimics demo-data seeding: weekends and evenings
// are less likely to be free than mornings.
func weightedRandomSource(seed int64) Source {
	rng := rand.New(rand.NewSource(seed))
	return SourceFunc(func(day time.Time, hour int) bool {
		r := rng.Float64()
		switch {
		case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
			return r > 0.4
		case hour < 12:
			return r > 0.2
		case hour < 17:
			return r > 0.3
		default:
			return r > 0.5
		}
	})
}

func refDate(t *testing.T) time.Time {
	t.Helper()
	ref, err := time.Parse("2006-01-02", "2024-06-01")
	if err != nil {
		t.Fatalf("parse ref date: %v", err)
	}
	return ref
}

func TestGenerate_GridShape(t *testing.T) {
	slots := Generate(refDate(t), weightedRandomSource(1))

	if len(slots) != 77 {
		t.Fatalf("expected 77 slots, got %d", len(slots))
	}
	seen := map[string]bool{}
	for _, s := range slots {
		if seen[s.ID] {
			t.Fatalf("duplicate slot id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if !seen["2024-06-01-08"] {
		t.Fatal("expected slot 2024-06-01-08 in grid")
	}
	if !seen["2024-06-07-18"] {
		t.Fatal("expected slot 2024-06-07-18 in grid")
	}
	if seen["2024-06-08-08"] {
		t.Fatal("slot 2024-06-08-08 is outside the 7-day window")
	}
}

func TestGenerate_SlotFields(t *testing.T) {
	slots := Generate(refDate(t), weightedRandomSource(1))

	first := slots[0]
	if first.ID != "2024-06-01-08" {
		t.Fatalf("expected first id 2024-06-01-08, got %q", first.ID)
	}
	if first.Date != "2024-06-01" || first.Time != "08:00" {
		t.Fatalf("unexpected first slot fields: %+v", first)
	}
	last := slots[len(slots)-1]
	if last.Date != "2024-06-07" || last.Time != "18:00" {
		t.Fatalf("unexpected last slot fields: %+v", last)
	}
}

func TestForDate(t *testing.T) {
	g := &Grid{Slots: Generate(refDate(t), weightedRandomSource(2))}

	for day := 0; day < WindowDays; day++ {
		date := refDate(t).AddDate(0, 0, day).Format("2006-01-02")
		slots := g.ForDate(date)
		if len(slots) != 11 {
			t.Fatalf("expected 11 slots on %s, got %d", date, len(slots))
		}
		for _, s := range slots {
			if s.Date != date {
				t.Fatalf("slot %q has date %q, want %q", s.ID, s.Date, date)
			}
		}
	}
	if got := g.ForDate("2024-06-08"); len(got) != 0 {
		t.Fatalf("expected no slots outside the window, got %d", len(got))
	}
}

func TestToggle_DoubleApplyRestores(t *testing.T) {
	g := &Grid{Slots: Generate(refDate(t), weightedRandomSource(3))}
	id := "2024-06-03-10"

	before := g.ForDate("2024-06-03")[2].Available
	if err := g.Toggle(id); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if err := g.Toggle(id); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	after := g.ForDate("2024-06-03")[2].Available
	if before != after {
		t.Fatalf("double toggle changed availability: before=%v after=%v", before, after)
	}
}

func TestToggle_UnknownID(t *testing.T) {
	g := &Grid{Slots: Generate(refDate(t), weightedRandomSource(4))}
	if err := g.Toggle("2030-01-01-08"); err != nil {
		t.Fatalf("lenient toggle on unknown id should be a no-op, got %v", err)
	}

	g.Strict = true
	if err := g.Toggle("2030-01-01-08"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("strict toggle on unknown id: got %v, want ErrSlotNotFound", err)
	}
}

func TestBulkSet_Convergence(t *testing.T) {
	g := &Grid{Slots: Generate(refDate(t), weightedRandomSource(5))}
	date := "2024-06-02"

	g.BulkSet(date, true)
	if got := len(g.AvailableForDate(date)); got != 11 {
		t.Fatalf("after bulk release expected 11 available, got %d", got)
	}
	g.BulkSet(date, false)
	if got := len(g.AvailableForDate(date)); got != 0 {
		t.Fatalf("after bulk block expected 0 available, got %d", got)
	}
}

func TestBook(t *testing.T) {
	g := &Grid{Slots: Generate(refDate(t), weightedRandomSource(6))}
	date := "2024-06-04"
	g.BulkSet(date, true)
	id := SlotID(date, 9)

	out, err := g.Book(id)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if !out.WasAvailable {
		t.Fatal("expected slot to be available before booking")
	}
	if out.Slot.Available {
		t.Fatal("expected booked slot to be unavailable")
	}

	out, err = g.Book(id)
	if err != nil {
		t.Fatalf("second book: %v", err)
	}
	if out.WasAvailable {
		t.Fatal("expected second booking attempt to see the slot taken")
	}

	if _, err := g.Book("2030-01-01-08"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("booking unknown id: got %v, want ErrSlotNotFound", err)
	}
}

func TestHoursSource(t *testing.T) {
	src := DefaultHours()
	slots := Generate(refDate(t), src)
	g := &Grid{Slots: slots}

	// 2024-06-02 is a Sunday, closed under default hours.
	if got := len(g.AvailableForDate("2024-06-02")); got != 0 {
		t.Fatalf("expected Sunday closed, got %d available slots", got)
	}
	// 2024-06-03 is a Monday, fully open.
	if got := len(g.AvailableForDate("2024-06-03")); got != 11 {
		t.Fatalf("expected Monday fully open, got %d available slots", got)
	}
}
