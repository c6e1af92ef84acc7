package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agendafacil/platform/libs/auth"
	"github.com/agendafacil/platform/services/company-service/internal/cnpj"
	"github.com/agendafacil/platform/services/company-service/internal/outbox"
	"github.com/agendafacil/platform/services/company-service/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	repo       *storage.Repository
	outboxRepo *outbox.Repository
	cnpjClient *cnpj.Client
	logger     *slog.Logger
	jwtSecret  string
	tokenTTL   time.Duration
}

func New(repo *storage.Repository, outboxRepo *outbox.Repository, cnpjClient *cnpj.Client, logger *slog.Logger, jwtSecret string) *Handler {
	return &Handler{
		repo:       repo,
		outboxRepo: outboxRepo,
		cnpjClient: cnpjClient,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   24 * time.Hour,
	}
}

type registerRequest struct {
	Name        string `json:"name"`
	RazaoSocial string `json:"razao_social"`
	CNPJ        string `json:"cnpj"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Password    string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" || req.CNPJ == "" {
		http.Error(w, "name, email, cnpj and password are required", http.StatusBadRequest)
		return
	}
	if !storage.ValidCategory(req.Category) {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}
	digits := cnpj.Normalize(req.CNPJ)
	if !cnpj.Valid(digits) {
		http.Error(w, "invalid cnpj", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		http.Error(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	id, err := h.repo.CreateCompany(r.Context(), &storage.Company{
		Name:         req.Name,
		RazaoSocial:  req.RazaoSocial,
		CNPJ:         digits,
		Email:        req.Email,
		Phone:        req.Phone,
		Category:     req.Category,
		Description:  req.Description,
		PasswordHash: string(hash),
	})
	if err != nil {
		if storage.IsDuplicate(err) {
			http.Error(w, "company already registered", http.StatusConflict)
			return
		}
		h.logger.Error("create company", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("company registered", "company_id", id, "category", req.Category)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	company, err := h.repo.GetCompanyByEmail(r.Context(), req.Email)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error("lookup company", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	token, err := auth.SignHS256(auth.Claims{
		Sub:       company.ID,
		CompanyID: company.ID,
		Role:      "provider",
		Iat:       now.Unix(),
		Exp:       now.Add(h.tokenTTL).Unix(),
	}, h.jwtSecret)
	if err != nil {
		h.logger.Error("sign token", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"company_id": company.ID,
		"name":       company.Name,
	})
}

type companyItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RazaoSocial string `json:"razao_social,omitempty"`
	CNPJ        string `json:"cnpj,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

func publicCompany(c storage.Company) companyItem {
	return companyItem{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Category:    c.Category,
		Description: c.Description,
	}
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	category := r.URL.Query().Get("category")
	if category != "" && !storage.ValidCategory(category) {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}
	companies, err := h.repo.ListCompanies(r.Context(), category, 0)
	if err != nil {
		h.logger.Error("list companies", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	items := make([]companyItem, 0, len(companies))
	for _, c := range companies {
		items = append(items, publicCompany(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": items})
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	company, err := h.repo.GetCompany(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "company not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get company", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, publicCompany(company))
}

func privateCompany(c storage.Company) companyItem {
	return companyItem{
		ID:          c.ID,
		Name:        c.Name,
		RazaoSocial: c.RazaoSocial,
		CNPJ:        c.CNPJ,
		Email:       c.Email,
		Phone:       c.Phone,
		Category:    c.Category,
		Description: c.Description,
	}
}

// Profile serves the authenticated company's own record. Unlike the
// public directory it includes cnpj, razao_social and email.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r)
	case http.MethodPut:
		h.updateProfile(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	companyID := r.Header.Get("X-Company-Id")
	if companyID == "" {
		http.Error(w, "missing company identity", http.StatusUnauthorized)
		return
	}
	company, err := h.repo.GetCompany(r.Context(), companyID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "company not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get company", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, privateCompany(company))
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	companyID := r.Header.Get("X-Company-Id")
	if companyID == "" {
		http.Error(w, "missing company identity", http.StatusUnauthorized)
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if !storage.ValidCategory(req.Category) {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}
	if err := h.repo.UpdateCompanyProfile(r.Context(), companyID, req.Name, req.Phone, req.Category, req.Description); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "company not found", http.StatusNotFound)
			return
		}
		h.logger.Error("update company profile", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// LookupCNPJ proxies the public registry so the registration form can
// prefill razao_social and address data.
func (h *Handler) LookupCNPJ(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rec, err := h.cnpjClient.Lookup(r.Context(), r.URL.Query().Get("cnpj"))
	if err != nil {
		switch {
		case errors.Is(err, cnpj.ErrInvalidCNPJ):
			http.Error(w, "invalid cnpj", http.StatusBadRequest)
		case errors.Is(err, cnpj.ErrNotFound):
			http.Error(w, "cnpj not found", http.StatusNotFound)
		default:
			h.logger.Error("cnpj lookup", "err", err)
			http.Error(w, "cnpj registry unavailable", http.StatusBadGateway)
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type createServiceRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	DurationMins int     `json:"duration_minutes"`
	Price        float64 `json:"price"`
}

type serviceCreatedPayload struct {
	ServiceID string `json:"service_id"`
	CompanyID string `json:"company_id"`
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	companyID := r.Header.Get("X-Company-Id")
	if companyID == "" {
		http.Error(w, "missing company identity", http.StatusUnauthorized)
		return
	}
	var req createServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if !storage.ValidCategory(req.Category) {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}
	if req.DurationMins <= 0 {
		req.DurationMins = 60
	}
	if req.Price < 0 {
		http.Error(w, "price must not be negative", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		h.logger.Error("begin tx", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := h.repo.CreateService(ctx, tx, &storage.CatalogService{
		CompanyID:    companyID,
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		Price:        req.Price,
	})
	if err != nil {
		h.logger.Error("create service", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(serviceCreatedPayload{ServiceID: id, CompanyID: companyID})
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "service",
		AggregateID:   id,
		EventType:     "catalog.service.created.v1",
		Payload:       payload,
	}); err != nil {
		h.logger.Error("outbox insert", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		h.logger.Error("commit", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("service created", "service_id", id, "company_id", companyID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type serviceItem struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description,omitempty"`
	DurationMins int     `json:"duration_minutes"`
	Price        float64 `json:"price"`
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	category := q.Get("category")
	if category != "" && !storage.ValidCategory(category) {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}
	services, err := h.repo.ListServices(r.Context(), q.Get("company_id"), category, q.Get("name"), 0)
	if err != nil {
		h.logger.Error("list services", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	items := make([]serviceItem, 0, len(services))
	for _, s := range services {
		items = append(items, serviceItem{
			ID:           s.ID,
			CompanyID:    s.CompanyID,
			Name:         s.Name,
			Category:     s.Category,
			Description:  s.Description,
			DurationMins: s.DurationMins,
			Price:        s.Price,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": items})
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	companyID := r.Header.Get("X-Company-Id")
	if companyID == "" {
		http.Error(w, "missing company identity", http.StatusUnauthorized)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	deleted, err := h.repo.DeleteService(r.Context(), companyID, id)
	if err != nil {
		h.logger.Error("delete service", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Hours(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listHours(w, r)
	case http.MethodPut:
		h.updateHours(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listHours(w http.ResponseWriter, r *http.Request) {
	companyID := r.Header.Get("X-Company-Id")
	if companyID == "" {
		companyID = r.URL.Query().Get("company_id")
	}
	if companyID == "" {
		http.Error(w, "missing company identity", http.StatusUnauthorized)
		return
	}
	week, err := h.repo.ListBusinessHours(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list business hours", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hours": week})
}

type updateHoursRequest struct {
	Hours []storage.DayHours `json:"hours"`
}

func (h *Handler) updateHours(w http.ResponseWriter, r *http.Request) {
	companyID := r.Header.Get("X-Company-Id")
	if companyID == "" {
		http.Error(w, "missing company identity", http.StatusUnauthorized)
		return
	}
	var req updateHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	for _, d := range req.Hours {
		if d.Weekday < 0 || d.Weekday > 6 {
			http.Error(w, "weekday must be between 0 and 6", http.StatusBadRequest)
			return
		}
		if d.Open && (d.OpenHour < 0 || d.CloseHour > 23 || d.OpenHour > d.CloseHour) {
			http.Error(w, "invalid open/close hours", http.StatusBadRequest)
			return
		}
	}
	ctx := r.Context()
	for _, d := range req.Hours {
		if err := h.repo.UpsertBusinessHours(ctx, companyID, d); err != nil {
			h.logger.Error("upsert business hours", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
