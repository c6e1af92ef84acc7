package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/agendafacil/platform/services/booking-service/internal/model"
)

func sampleAppointments() []model.Appointment {
	return []model.Appointment{
		{
			ID: "a1", ServiceID: "svc-1", ServiceName: "Corte de Cabelo",
			CompanyID: "c1", CompanyName: "Barbearia Silva", UserName: "João Pereira",
			Date: "2024-06-01", Time: "09:00", Status: model.StatusPending,
		},
		{
			ID: "a2", ServiceID: "svc-2", ServiceName: "Limpeza de Pele",
			CompanyID: "c2", CompanyName: "Estética Bela", UserName: "Maria Silva",
			Date: "2024-06-03", Time: "14:00", Status: model.StatusConfirmed,
		},
		{
			ID: "a3", ServiceID: "svc-1", ServiceName: "Corte de Cabelo",
			CompanyID: "c1", CompanyName: "Barbearia Silva", UserName: "Ana Souza",
			Date: "2024-05-20", Time: "10:00", Status: model.StatusCompleted,
		},
		{
			ID: "a4", ServiceID: "svc-3", ServiceName: "Revisão Automotiva",
			CompanyID: "c3", CompanyName: "Auto Center Lima", UserName: "Carlos Dias",
			Date: "2024-06-20", Time: "08:00", Status: model.StatusCancelled,
		},
	}
}

func TestFilter_ComposesWithAND(t *testing.T) {
	appts := sampleAppointments()

	got := Filter(appts, Criteria{Status: model.StatusPending, DateFrom: "2024-06-01", DateTo: "2024-06-01"})
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("expected exactly a1, got %+v", got)
	}

	got = Filter(appts, Criteria{CompanyID: "c1"})
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments for company c1, got %d", len(got))
	}

	got = Filter(appts, Criteria{CompanyID: "c1", ServiceID: "svc-2"})
	if len(got) != 0 {
		t.Fatalf("expected empty intersection, got %d", len(got))
	}

	got = Filter(appts, Criteria{})
	if len(got) != len(appts) {
		t.Fatalf("empty criteria should match all, got %d", len(got))
	}
}

func TestFilter_DateBoundsInclusive(t *testing.T) {
	appts := sampleAppointments()
	got := Filter(appts, Criteria{DateFrom: "2024-06-01", DateTo: "2024-06-03"})
	if len(got) != 2 {
		t.Fatalf("expected a1 and a2, got %d entries", len(got))
	}
}

func TestSearch_CaseInsensitiveOverNames(t *testing.T) {
	appts := sampleAppointments()

	got := Search(appts, "SILVA")
	// Matches company "Barbearia Silva" (a1, a3) and user "Maria Silva" (a2).
	if len(got) != 3 {
		t.Fatalf("expected 3 matches for silva, got %d", len(got))
	}

	got = Search(Filter(appts, Criteria{Status: model.StatusConfirmed}), "silva")
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("expected only confirmed a2, got %+v", got)
	}

	if got := Search(appts, ""); len(got) != len(appts) {
		t.Fatalf("empty term should match all, got %d", len(got))
	}
}

func TestComputeStats(t *testing.T) {
	appts := sampleAppointments()
	ref, _ := time.Parse("2006-01-02", "2024-06-01")

	s := ComputeStats(appts, ref)
	if s.Total != len(appts) {
		t.Fatalf("total=%d, want %d", s.Total, len(appts))
	}
	if s.Pending+s.Confirmed+s.Cancelled+s.Completed != s.Total {
		t.Fatalf("status counts %d+%d+%d+%d do not sum to total %d",
			s.Pending, s.Confirmed, s.Cancelled, s.Completed, s.Total)
	}
	if s.Today != 1 {
		t.Fatalf("today=%d, want 1", s.Today)
	}
	// a1 (06-01), a2 (06-03) and the past a3 (05-20) fall under the
	// week upper bound of 06-08; a4 (06-20) does not.
	if s.ThisWeek != 3 {
		t.Fatalf("thisWeek=%d, want 3", s.ThisWeek)
	}
	if s.ThisMonth != 4 {
		t.Fatalf("thisMonth=%d, want 4", s.ThisMonth)
	}
}

func TestSetStatus(t *testing.T) {
	now := time.Now()
	appts, err := SetStatus(sampleAppointments(), "a1", model.StatusConfirmed, now, false)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if appts[0].Status != model.StatusConfirmed {
		t.Fatalf("status=%q, want confirmed", appts[0].Status)
	}
	if !appts[0].UpdatedAt.Equal(now) {
		t.Fatal("expected updatedAt to be refreshed")
	}

	if _, err := SetStatus(sampleAppointments(), "missing", model.StatusConfirmed, now, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatus_StrictTransitions(t *testing.T) {
	now := time.Now()

	// completed is terminal under the strict table.
	if _, err := SetStatus(sampleAppointments(), "a3", model.StatusPending, now, true); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	// Permissive mode allows the same change.
	if _, err := SetStatus(sampleAppointments(), "a3", model.StatusPending, now, false); err != nil {
		t.Fatalf("permissive set status: %v", err)
	}
	// pending -> confirmed is legal either way.
	if _, err := SetStatus(sampleAppointments(), "a1", model.StatusConfirmed, now, true); err != nil {
		t.Fatalf("strict pending->confirmed: %v", err)
	}
}

func TestRemove(t *testing.T) {
	appts, removed := Remove(sampleAppointments(), "a2")
	if !removed {
		t.Fatal("expected a2 to be removed")
	}
	if len(appts) != 3 {
		t.Fatalf("expected 3 remaining, got %d", len(appts))
	}

	appts, removed = Remove(appts, "missing")
	if removed {
		t.Fatal("removing a missing id should be a no-op")
	}
	if len(appts) != 3 {
		t.Fatalf("no-op remove changed length to %d", len(appts))
	}
}
