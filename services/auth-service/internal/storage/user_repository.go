package storage

import (
	"context"
	"errors"
	"time"

	"github.com/agendafacil/platform/libs/db"
	"github.com/jackc/pgx/v5"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserRepository struct {
	pool *db.Pool
}

func NewUserRepository(pool *db.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user User) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.Role)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.scan(r.pool.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (User, error) {
	return r.scan(r.pool.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), password_hash, role, created_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, phone string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $2, phone = $3, updated_at = now()
		WHERE id = $1
	`, id, name, phone)
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *UserRepository) scan(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}
