package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agendafacil/platform/services/booking-service/internal/ledger"
	"github.com/agendafacil/platform/services/booking-service/internal/model"
	"github.com/agendafacil/platform/services/booking-service/internal/outbox"
	"github.com/agendafacil/platform/services/booking-service/internal/slotgrid"
	"github.com/agendafacil/platform/services/booking-service/internal/storage"
	"github.com/jackc/pgx/v5"
)

// Options are the booking policy knobs. Both default to the lenient
// behavior: missing ids are no-ops and any status may replace any other.
type Options struct {
	StrictNotFound    bool
	StrictTransitions bool
}

type BookingHandler struct {
	repo            *storage.BookingRepository
	slots           *storage.SlotRepository
	outboxRepo      *outbox.Repository
	logger          *slog.Logger
	opts            Options
	reminderOffsets []time.Duration
}

func NewBookingHandler(repo *storage.BookingRepository, slots *storage.SlotRepository, outboxRepo *outbox.Repository, logger *slog.Logger, opts Options, reminderOffsets []time.Duration) *BookingHandler {
	return &BookingHandler{
		repo:            repo,
		slots:           slots,
		outboxRepo:      outboxRepo,
		logger:          logger,
		opts:            opts,
		reminderOffsets: reminderOffsets,
	}
}

type createBookingRequest struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	CompanyID   string  `json:"company_id"`
	CompanyName string  `json:"company_name"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
	UserPhone   string  `json:"user_phone"`
	SlotID      string  `json:"slot_id"`
	Duration    int     `json:"duration_minutes"`
	Price       float64 `json:"price"`
	Notes       string  `json:"notes"`
}

type createBookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

type appointmentItem struct {
	AppointmentID string  `json:"appointment_id"`
	ServiceID     string  `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	CompanyID     string  `json:"company_id"`
	CompanyName   string  `json:"company_name"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Duration      int     `json:"duration_minutes"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type setStatusRequest struct {
	CompanyID     string `json:"company_id"`
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}

// Create books a slot and records the appointment in one transaction.
// Booking marks the slot unavailable; a taken slot is a 409 so two
// clients cannot hold the same hour.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.CompanyID = strings.TrimSpace(req.CompanyID)
	req.SlotID = strings.TrimSpace(req.SlotID)
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserID == "" {
		req.UserID = strings.TrimSpace(r.Header.Get("X-User-Id"))
	}

	if req.ServiceID == "" || req.CompanyID == "" || req.SlotID == "" || req.UserName == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}
	if req.Duration <= 0 {
		req.Duration = 60
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.repo.LockIdempotencyKey(ctx, tx, req.CompanyID, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
			return
		}
		if exists && rec.StatusCode > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			if len(rec.ResponsePayload) > 0 {
				_, _ = w.Write(rec.ResponsePayload)
			}
			return
		}
	}

	booked, err := h.slots.Book(ctx, tx, req.ServiceID, req.SlotID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "slot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to book slot", http.StatusInternalServerError)
		return
	}
	if !booked.WasAvailable {
		if idempotencyKey != "" {
			if h.finalizeIdempotencyError(ctx, tx, req.CompanyID, idempotencyKey, http.StatusConflict, "slot already booked") {
				_ = tx.Commit(ctx)
				return
			}
		}
		http.Error(w, "slot already booked", http.StatusConflict)
		return
	}

	appt := &model.Appointment{
		ServiceID:   req.ServiceID,
		ServiceName: strings.TrimSpace(req.ServiceName),
		CompanyID:   req.CompanyID,
		CompanyName: strings.TrimSpace(req.CompanyName),
		UserID:      req.UserID,
		UserName:    req.UserName,
		UserEmail:   strings.TrimSpace(req.UserEmail),
		UserPhone:   strings.TrimSpace(req.UserPhone),
		Date:        booked.Slot.Date,
		Time:        booked.Slot.Time,
		Duration:    req.Duration,
		Price:       req.Price,
		Status:      model.StatusPending,
		Notes:       strings.TrimSpace(req.Notes),
	}

	id, err := h.repo.Create(ctx, tx, appt)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "appointment conflicts with an existing booking", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	evtPayload, err := json.Marshal(map[string]any{
		"appointment_id": id,
		"service_id":     appt.ServiceID,
		"company_id":     appt.CompanyID,
		"user_email":     appt.UserEmail,
		"user_phone":     appt.UserPhone,
		"date":           appt.Date,
		"time":           appt.Time,
		"slot_id":        booked.Slot.ID,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   id,
		EventType:     "booking.appointment.booked.v1",
		Payload:       evtPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	h.enqueueReminders(ctx, tx, id, appt)

	respBody, err := json.Marshal(createBookingResponse{
		AppointmentID: id,
		Date:          appt.Date,
		Time:          appt.Time,
		Status:        appt.Status,
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, req.CompanyID, idempotencyKey, id, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

// List returns a scope's appointments narrowed by the filter criteria
// and an optional text search over service, company and user names.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	appts, ok := h.loadScoped(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	criteria := ledger.Criteria{
		Status:    strings.TrimSpace(q.Get("status")),
		DateFrom:  strings.TrimSpace(q.Get("date_from")),
		DateTo:    strings.TrimSpace(q.Get("date_to")),
		ServiceID: strings.TrimSpace(q.Get("service_id")),
	}
	if criteria.Status != "" && !model.ValidStatus(criteria.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	for _, d := range []string{criteria.DateFrom, criteria.DateTo} {
		if d != "" && !validDate(d) {
			http.Error(w, "date bounds must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	result := ledger.Search(ledger.Filter(appts, criteria), q.Get("q"))

	items := make([]appointmentItem, 0, len(result))
	for _, a := range result {
		items = append(items, toItem(a))
	}
	writeJSON(w, http.StatusOK, items)
}

// Stats serves the derived dashboard counts. The reference date
// defaults to today and can be pinned with ?ref=YYYY-MM-DD.
func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	appts, ok := h.loadScoped(w, r)
	if !ok {
		return
	}

	ref := time.Now().UTC()
	if raw := strings.TrimSpace(r.URL.Query().Get("ref")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			http.Error(w, "ref must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		ref = parsed
	}

	s := ledger.ComputeStats(appts, ref)
	writeJSON(w, http.StatusOK, map[string]int{
		"total":      s.Total,
		"pending":    s.Pending,
		"confirmed":  s.Confirmed,
		"cancelled":  s.Cancelled,
		"completed":  s.Completed,
		"today":      s.Today,
		"this_week":  s.ThisWeek,
		"this_month": s.ThisMonth,
	})
}

// SetStatus updates one appointment's status. Cancelling also frees the
// underlying slot and emits a cancellation event.
func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	h.applyStatus(w, r, req)
}

// Cancel is a shorthand for SetStatus with the cancelled status. It
// reopens the slot and emits the cancellation event on success.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Status = model.StatusCancelled
	h.applyStatus(w, r, req)
}

func (h *BookingHandler) applyStatus(w http.ResponseWriter, r *http.Request, req setStatusRequest) {
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.Status = strings.TrimSpace(req.Status)
	companyID := scopeCompany(r, req.CompanyID)
	if companyID == "" || req.AppointmentID == "" {
		http.Error(w, "company_id and appointment_id required", http.StatusBadRequest)
		return
	}
	if !model.ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.repo.GetForUpdate(ctx, tx, companyID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			if h.opts.StrictNotFound {
				http.Error(w, "appointment not found", http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"appointment_id": req.AppointmentID, "updated": false})
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	if appt.Status == req.Status {
		writeJSON(w, http.StatusOK, map[string]any{"appointment_id": appt.ID, "status": appt.Status, "updated": false})
		return
	}
	if h.opts.StrictTransitions && !ledger.CanTransition(appt.Status, req.Status) {
		http.Error(w, "invalid status transition", http.StatusConflict)
		return
	}

	updatedAt, err := h.repo.SetStatus(ctx, tx, appt.ID, req.Status)
	if err != nil {
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	if req.Status == model.StatusCancelled {
		if err := h.onCancelled(ctx, tx, appt, updatedAt); err != nil {
			http.Error(w, "failed to record cancellation", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"appointment_id": appt.ID,
		"status":         req.Status,
		"updated":        true,
		"updated_at":     updatedAt.UTC().Format(time.RFC3339),
	})
}

// Remove deletes an appointment record. Missing ids are a no-op unless
// strict not-found reporting is enabled.
func (h *BookingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	appointmentID := strings.TrimSpace(r.URL.Query().Get("appointment_id"))
	companyID := scopeCompany(r, r.URL.Query().Get("company_id"))
	if companyID == "" || appointmentID == "" {
		http.Error(w, "company_id and appointment_id required", http.StatusBadRequest)
		return
	}

	removed, err := h.repo.Delete(r.Context(), companyID, appointmentID)
	if err != nil {
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}
	if !removed && h.opts.StrictNotFound {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointment_id": appointmentID, "removed": removed})
}

func (h *BookingHandler) loadScoped(w http.ResponseWriter, r *http.Request) ([]model.Appointment, bool) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	companyID := scopeCompany(r, r.URL.Query().Get("company_id"))
	if companyID != "" {
		appts, err := h.repo.ListByCompany(r.Context(), companyID, limit)
		if err != nil {
			http.Error(w, "failed to list appointments", http.StatusInternalServerError)
			return nil, false
		}
		return appts, true
	}

	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		userID = strings.TrimSpace(r.URL.Query().Get("user_id"))
	}
	if userID == "" {
		http.Error(w, "company_id or user_id required", http.StatusBadRequest)
		return nil, false
	}
	appts, err := h.repo.ListByUser(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return nil, false
	}
	return appts, true
}

func (h *BookingHandler) onCancelled(ctx context.Context, tx pgx.Tx, appt model.Appointment, cancelledAt time.Time) error {
	// Free the slot so the hour becomes bookable again. The update rides
	// the cancel transaction: if the commit fails the slot stays booked.
	if hour, ok := slotHour(appt.Time); ok {
		slotID := slotgrid.SlotID(appt.Date, hour)
		if _, err := h.slots.SetAvailable(ctx, tx, appt.ServiceID, slotID, true); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(map[string]any{
		"appointment_id": appt.ID,
		"service_id":     appt.ServiceID,
		"company_id":     appt.CompanyID,
		"date":           appt.Date,
		"time":           appt.Time,
		"cancelled_at":   cancelledAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     "booking.appointment.cancelled.v1",
		Payload:       payload,
	})
}

func (h *BookingHandler) enqueueReminders(ctx context.Context, tx pgx.Tx, appointmentID string, appt *model.Appointment) {
	start, err := time.Parse("2006-01-02 15:04", appt.Date+" "+appt.Time)
	if err != nil {
		h.logger.Warn("cannot schedule reminders for malformed slot time", "date", appt.Date, "time", appt.Time)
		return
	}
	now := time.Now().UTC()
	for _, offset := range h.reminderOffsets {
		remindAt := start.Add(-offset)
		if remindAt.Before(now) {
			continue
		}
		h.enqueueReminder(ctx, tx, appointmentID, appt, remindAt, "email", appt.UserEmail)
		h.enqueueReminder(ctx, tx, appointmentID, appt, remindAt, "sms", appt.UserPhone)
	}
}

func (h *BookingHandler) enqueueReminder(ctx context.Context, tx pgx.Tx, appointmentID string, appt *model.Appointment, remindAt time.Time, channel string, recipient string) {
	if strings.TrimSpace(recipient) == "" {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"appointment_id": appointmentID,
		"company_id":     appt.CompanyID,
		"channel":        channel,
		"recipient":      recipient,
		"remind_at":      remindAt.UTC().Format(time.RFC3339),
		"template_data": map[string]any{
			"user_name":    appt.UserName,
			"service_name": appt.ServiceName,
			"date":         appt.Date,
			"time":         appt.Time,
		},
	})
	if err != nil {
		h.logger.Error("failed to build reminder payload", "err", err)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appointmentID,
		EventType:     "booking.reminder.requested.v1",
		Payload:       payload,
	}); err != nil {
		h.logger.Error("failed to enqueue reminder", "err", err)
	}
}

func (h *BookingHandler) finalizeIdempotencyError(ctx context.Context, tx pgx.Tx, companyID, key string, statusCode int, msg string) bool {
	body, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return false
	}
	if err := h.repo.FinalizeIdempotency(ctx, tx, companyID, key, "", statusCode, body); err != nil {
		h.logger.Error("failed to finalize idempotency (error)", "err", err)
		return false
	}
	return true
}

func toItem(a model.Appointment) appointmentItem {
	return appointmentItem{
		AppointmentID: a.ID,
		ServiceID:     a.ServiceID,
		ServiceName:   a.ServiceName,
		CompanyID:     a.CompanyID,
		CompanyName:   a.CompanyName,
		UserID:        a.UserID,
		UserName:      a.UserName,
		Date:          a.Date,
		Time:          a.Time,
		Duration:      a.Duration,
		Price:         a.Price,
		Status:        a.Status,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func scopeCompany(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.Header.Get("X-Company-Id")); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

func slotHour(apptTime string) (int, bool) {
	parts := strings.SplitN(apptTime, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
