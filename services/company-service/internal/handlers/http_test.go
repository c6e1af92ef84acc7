package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegister_RejectsBadRequests(t *testing.T) {
	h := New(nil, nil, nil, discardLogger(), "secret")

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodGet, "/api/v1/companies/register", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET register: got %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/v1/companies/register", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/v1/companies/register",
		strings.NewReader(`{"name":"Barbearia Silva","email":"contato@silva.com","cnpj":"11222333000181","password":"s3nh4forte","category":"gardening"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/v1/companies/register",
		strings.NewReader(`{"name":"Barbearia Silva","email":"contato@silva.com","cnpj":"11222333000199","password":"s3nh4forte","category":"beauty"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad cnpj check digits: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/v1/companies/register",
		strings.NewReader(`{"name":"Barbearia Silva","email":"contato@silva.com","cnpj":"11222333000181","password":"short","category":"beauty"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: got %d, want 400", rec.Code)
	}
}

func TestCreateService_RequiresIdentityAndCategory(t *testing.T) {
	h := New(nil, nil, nil, discardLogger(), "secret")

	rec := httptest.NewRecorder()
	h.CreateService(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/services",
		strings.NewReader(`{"name":"Corte Masculino","category":"beauty"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no identity: got %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/services",
		strings.NewReader(`{"name":"Corte Masculino","category":"plumbing"}`))
	req.Header.Set("X-Company-Id", "c1")
	rec = httptest.NewRecorder()
	h.CreateService(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category: got %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/catalog/services",
		strings.NewReader(`{"category":"beauty"}`))
	req.Header.Set("X-Company-Id", "c1")
	rec = httptest.NewRecorder()
	h.CreateService(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing name: got %d, want 400", rec.Code)
	}
}

func TestUpdateHours_ValidatesWindows(t *testing.T) {
	h := New(nil, nil, nil, discardLogger(), "secret")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/hours",
		strings.NewReader(`{"hours":[{"weekday":9,"open_hour":8,"close_hour":18,"open":true}]}`))
	req.Header.Set("X-Company-Id", "c1")
	rec := httptest.NewRecorder()
	h.Hours(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("weekday out of range: got %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/catalog/hours",
		strings.NewReader(`{"hours":[{"weekday":1,"open_hour":18,"close_hour":8,"open":true}]}`))
	req.Header.Set("X-Company-Id", "c1")
	rec = httptest.NewRecorder()
	h.Hours(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted window: got %d, want 400", rec.Code)
	}
}
