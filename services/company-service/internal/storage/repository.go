package storage

import (
	"context"
	"errors"
	"time"

	"github.com/agendafacil/platform/libs/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Categories every company and catalog service must fall into.
var Categories = []string{"medical", "beauty", "technical", "education", "wellness", "automotive"}

func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

type Company struct {
	ID           string
	Name         string
	RazaoSocial  string
	CNPJ         string
	Email        string
	Phone        string
	Category     string
	Description  string
	PasswordHash string
	CreatedAt    time.Time
}

func (r *Repository) CreateCompany(ctx context.Context, c *Company) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO companies (id, name, razao_social, cnpj, email, phone, category, description, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, c.Name, c.RazaoSocial, c.CNPJ, c.Email, c.Phone, c.Category, c.Description, c.PasswordHash)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetCompany(ctx context.Context, id string) (Company, error) {
	return r.scanCompany(r.pool.QueryRow(ctx, `
		SELECT id::text, name, razao_social, cnpj, email, phone, category, COALESCE(description, ''), password_hash, created_at
		FROM companies
		WHERE id = $1
	`, id))
}

func (r *Repository) GetCompanyByEmail(ctx context.Context, email string) (Company, error) {
	return r.scanCompany(r.pool.QueryRow(ctx, `
		SELECT id::text, name, razao_social, cnpj, email, phone, category, COALESCE(description, ''), password_hash, created_at
		FROM companies
		WHERE email = $1
	`, email))
}

func (r *Repository) ListCompanies(ctx context.Context, category string, limit int) ([]Company, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, razao_social, cnpj, email, phone, category, COALESCE(description, ''), password_hash, created_at
		FROM companies
		WHERE ($1 = '' OR category = $1)
		ORDER BY name
		LIMIT $2
	`, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		c, err := r.scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) UpdateCompanyProfile(ctx context.Context, id, name, phone, category, description string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE companies
		SET name = $2, phone = $3, category = $4, description = NULLIF($5, ''), updated_at = now()
		WHERE id = $1
	`, id, name, phone, category, description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type CatalogService struct {
	ID           string
	CompanyID    string
	Name         string
	Category     string
	Description  string
	DurationMins int
	Price        float64
	CreatedAt    time.Time
}

func (r *Repository) CreateService(ctx context.Context, tx pgx.Tx, s *CatalogService) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO catalog_services (id, company_id, name, category, description, duration_minutes, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, s.CompanyID, s.Name, s.Category, s.Description, s.DurationMins, s.Price)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListServices filters by any combination of company, category and a
// case-insensitive name fragment.
func (r *Repository) ListServices(ctx context.Context, companyID, category, name string, limit int) ([]CatalogService, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, company_id::text, name, category, COALESCE(description, ''), duration_minutes, price, created_at
		FROM catalog_services
		WHERE ($1 = '' OR company_id::text = $1)
			AND ($2 = '' OR category = $2)
			AND ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
		LIMIT $4
	`, companyID, category, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CatalogService
	for rows.Next() {
		var s CatalogService
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Category, &s.Description, &s.DurationMins, &s.Price, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) GetService(ctx context.Context, id string) (CatalogService, error) {
	var s CatalogService
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, company_id::text, name, category, COALESCE(description, ''), duration_minutes, price, created_at
		FROM catalog_services
		WHERE id = $1
	`, id).Scan(&s.ID, &s.CompanyID, &s.Name, &s.Category, &s.Description, &s.DurationMins, &s.Price, &s.CreatedAt)
	return s, err
}

func (r *Repository) DeleteService(ctx context.Context, companyID, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM catalog_services
		WHERE id = $1 AND company_id = $2
	`, id, companyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type DayHours struct {
	Weekday   int  `json:"weekday"`
	OpenHour  int  `json:"open_hour"`
	CloseHour int  `json:"close_hour"`
	Open      bool `json:"open"`
}

// ListBusinessHours returns the configured week. Missing weekdays fall
// back to the platform default of Monday-Saturday 08:00-18:00.
func (r *Repository) ListBusinessHours(ctx context.Context, companyID string) ([]DayHours, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, open_hour, close_hour, is_open
		FROM business_hours
		WHERE company_id = $1
		ORDER BY weekday
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configured := map[int]DayHours{}
	for rows.Next() {
		var d DayHours
		if err := rows.Scan(&d.Weekday, &d.OpenHour, &d.CloseHour, &d.Open); err != nil {
			return nil, err
		}
		configured[d.Weekday] = d
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	week := make([]DayHours, 0, 7)
	for wd := 0; wd <= 6; wd++ {
		if d, ok := configured[wd]; ok {
			week = append(week, d)
			continue
		}
		// Sunday (0) closed, otherwise the default window.
		week = append(week, DayHours{Weekday: wd, OpenHour: 8, CloseHour: 18, Open: wd != 0})
	}
	return week, nil
}

func (r *Repository) UpsertBusinessHours(ctx context.Context, companyID string, d DayHours) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO business_hours (company_id, weekday, open_hour, close_hour, is_open)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, weekday) DO UPDATE
		SET open_hour = EXCLUDED.open_hour,
			close_hour = EXCLUDED.close_hour,
			is_open = EXCLUDED.is_open,
			updated_at = now()
	`, companyID, d.Weekday, d.OpenHour, d.CloseHour, d.Open)
	return err
}

func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *Repository) scanCompany(row pgx.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.RazaoSocial, &c.CNPJ, &c.Email, &c.Phone, &c.Category, &c.Description, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return Company{}, err
	}
	return c, nil
}
