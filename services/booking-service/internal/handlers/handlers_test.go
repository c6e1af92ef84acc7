package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agendafacil/platform/services/booking-service/internal/model"
	"github.com/agendafacil/platform/services/booking-service/internal/outbox"
	"github.com/agendafacil/platform/services/booking-service/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recordingTx captures statements executed against a transaction.
// Unimplemented pgx.Tx methods panic, which fails the test loudly if a
// code path escapes the transaction.
type recordingTx struct {
	pgx.Tx
	statements []string
	args       [][]any
}

func (tx *recordingTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tx.statements = append(tx.statements, sql)
	tx.args = append(tx.args, args)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreate_RejectsBadRequests(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil, discardLogger(), Options{}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/book", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET book: got %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/public/book", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/public/book",
		strings.NewReader(`{"service_id":"svc-1","company_id":"c1"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing slot_id/user_name: got %d, want 400", rec.Code)
	}
}

func TestSlotHandler_RejectsBadRequests(t *testing.T) {
	h := NewSlotHandler(nil, discardLogger(), false)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?service_id=svc-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?service_id=svc-1&date=01-06-2024", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/toggle", strings.NewReader(`{"service_id":"svc-1"}`))
	req.Header.Set("X-Role", "provider")
	h.Toggle(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing slot_id: got %d, want 400", rec.Code)
	}
}

func TestSlotMutations_RequireProviderRole(t *testing.T) {
	h := NewSlotHandler(nil, discardLogger(), false)

	rec := httptest.NewRecorder()
	h.Toggle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots/toggle",
		strings.NewReader(`{"service_id":"svc-1","slot_id":"2024-06-03-10"}`)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("toggle without role: got %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/bulk",
		strings.NewReader(`{"service_id":"svc-1","date":"2024-06-03","available":true}`))
	req.Header.Set("X-Role", "user")
	h.BulkSet(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bulk set as user: got %d, want 403", rec.Code)
	}

	// Admins pass the gate; the request then fails validation, not authz.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/slots/bulk", strings.NewReader(`{"service_id":"svc-1"}`))
	req.Header.Set("X-Role", "admin")
	h.BulkSet(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bulk set missing date as admin: got %d, want 400", rec.Code)
	}
}

func TestSetStatus_ValidatesStatus(t *testing.T) {
	h := NewBookingHandler(nil, nil, nil, discardLogger(), Options{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/status",
		strings.NewReader(`{"company_id":"c1","appointment_id":"a1","status":"archived"}`))
	rec := httptest.NewRecorder()
	h.SetStatus(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: got %d, want 400", rec.Code)
	}
}

func TestCancelReopensSlotOnSameTransaction(t *testing.T) {
	h := NewBookingHandler(nil, storage.NewSlotRepository(nil), outbox.NewRepository(nil), discardLogger(), Options{}, nil)

	tx := &recordingTx{}
	appt := model.Appointment{
		ID:        "appt-1",
		ServiceID: "svc-1",
		CompanyID: "c1",
		Date:      "2024-06-03",
		Time:      "10:00",
	}
	if err := h.onCancelled(context.Background(), tx, appt, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("onCancelled: %v", err)
	}

	var freedSlot, wroteEvent bool
	for i, stmt := range tx.statements {
		if strings.Contains(stmt, "UPDATE service_slots") {
			freedSlot = true
			if got := tx.args[i][1]; got != "2024-06-03-10" {
				t.Fatalf("freed slot %v, want 2024-06-03-10", got)
			}
			if got := tx.args[i][2]; got != true {
				t.Fatalf("slot availability set to %v, want true", got)
			}
		}
		if strings.Contains(stmt, "INSERT INTO outbox_events") {
			wroteEvent = true
		}
	}
	if !freedSlot {
		t.Fatal("slot was not reopened on the cancel transaction")
	}
	if !wroteEvent {
		t.Fatal("cancellation event was not written on the cancel transaction")
	}
}

func TestSlotHour(t *testing.T) {
	if hour, ok := slotHour("08:00"); !ok || hour != 8 {
		t.Fatalf("slotHour(08:00) = %d, %v", hour, ok)
	}
	if hour, ok := slotHour("18:00"); !ok || hour != 18 {
		t.Fatalf("slotHour(18:00) = %d, %v", hour, ok)
	}
	if _, ok := slotHour("late"); ok {
		t.Fatal("expected malformed time to be rejected")
	}
}
