package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/agendafacil/platform/services/booking-service/internal/model"
)

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Criteria narrows an appointment query. Zero-valued fields impose no
// constraint; present fields compose with logical AND. Date bounds are
// inclusive and compare lexically, which is correct for well-formed
// YYYY-MM-DD values.
type Criteria struct {
	Status    string
	DateFrom  string
	DateTo    string
	CompanyID string
	ServiceID string
}

func Filter(appts []model.Appointment, c Criteria) []model.Appointment {
	var out []model.Appointment
	for _, a := range appts {
		if c.Status != "" && a.Status != c.Status {
			continue
		}
		if c.DateFrom != "" && a.Date < c.DateFrom {
			continue
		}
		if c.DateTo != "" && a.Date > c.DateTo {
			continue
		}
		if c.CompanyID != "" && a.CompanyID != c.CompanyID {
			continue
		}
		if c.ServiceID != "" && a.ServiceID != c.ServiceID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Search matches term case-insensitively against service, company and
// user names. It composes with Filter by running over the already
// filtered set. An empty term matches everything.
func Search(appts []model.Appointment, term string) []model.Appointment {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return appts
	}
	var out []model.Appointment
	for _, a := range appts {
		if strings.Contains(strings.ToLower(a.ServiceName), term) ||
			strings.Contains(strings.ToLower(a.CompanyName), term) ||
			strings.Contains(strings.ToLower(a.UserName), term) {
			out = append(out, a)
		}
	}
	return out
}

// Stats are derived counts over the ledger, recomputed on demand rather
// than maintained incrementally.
type Stats struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
	Completed int
	Today     int
	ThisWeek  int
	ThisMonth int
}

// ComputeStats aggregates the collection in a single pass relative to
// ref. The week and month windows enforce only the upper bound, so past
// appointments still count toward them.
func ComputeStats(appts []model.Appointment, ref time.Time) Stats {
	refDay := ref.Format("2006-01-02")
	weekEnd := ref.AddDate(0, 0, 7).Format("2006-01-02")
	monthEnd := ref.AddDate(0, 1, 0).Format("2006-01-02")

	var s Stats
	for _, a := range appts {
		s.Total++
		switch a.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusConfirmed:
			s.Confirmed++
		case model.StatusCancelled:
			s.Cancelled++
		case model.StatusCompleted:
			s.Completed++
		}
		if a.Date == refDay {
			s.Today++
		}
		if a.Date <= weekEnd {
			s.ThisWeek++
		}
		if a.Date <= monthEnd {
			s.ThisMonth++
		}
	}
	return s
}

// transitions is the strict status machine: pending and confirmed move
// forward or cancel, completed and cancelled are terminal.
var transitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// SetStatus replaces the matching appointment's status and updatedAt.
// With strictTransitions, changes outside the transition table are
// rejected; otherwise any status may replace any other.
func SetStatus(appts []model.Appointment, id, status string, now time.Time, strictTransitions bool) ([]model.Appointment, error) {
	for i := range appts {
		if appts[i].ID != id {
			continue
		}
		if strictTransitions && !CanTransition(appts[i].Status, status) {
			return appts, ErrInvalidTransition
		}
		appts[i].Status = status
		appts[i].UpdatedAt = now
		return appts, nil
	}
	return appts, ErrNotFound
}

// Remove deletes the matching appointment, reporting whether anything
// was removed. Missing ids are a no-op.
func Remove(appts []model.Appointment, id string) ([]model.Appointment, bool) {
	for i := range appts {
		if appts[i].ID == id {
			return append(appts[:i], appts[i+1:]...), true
		}
	}
	return appts, false
}
