package storage

import (
	"context"
	"errors"

	"github.com/agendafacil/platform/libs/db"
	"github.com/agendafacil/platform/services/booking-service/internal/slotgrid"
	"github.com/jackc/pgx/v5"
)

// SlotRepository persists per-service slot grids. Slot ids, dates and
// times are stored as the same wall-clock strings the domain uses.
type SlotRepository struct {
	pool *db.Pool
}

func NewSlotRepository(pool *db.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func (r *SlotRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// InsertGrid writes a freshly generated grid. Re-inserting an existing
// (service, slot) pair is a no-op so grid generation can be retried.
func (r *SlotRepository) InsertGrid(ctx context.Context, tx pgx.Tx, serviceID string, slots []slotgrid.Slot) error {
	for _, s := range slots {
		_, err := tx.Exec(ctx, `
			INSERT INTO service_slots (service_id, slot_id, slot_date, slot_time, available)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (service_id, slot_id) DO NOTHING
		`, serviceID, s.ID, s.Date, s.Time, s.Available)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SlotRepository) HasGrid(ctx context.Context, serviceID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM service_slots WHERE service_id = $1)
	`, serviceID).Scan(&exists)
	return exists, err
}

// ListForDate returns the slots on date in ascending hour order. With
// availableOnly, blocked slots are filtered out.
func (r *SlotRepository) ListForDate(ctx context.Context, serviceID, date string, availableOnly bool) ([]slotgrid.Slot, error) {
	query := `
		SELECT slot_id, slot_date, slot_time, available
		FROM service_slots
		WHERE service_id = $1 AND slot_date = $2
		ORDER BY slot_id
	`
	if availableOnly {
		query = `
			SELECT slot_id, slot_date, slot_time, available
			FROM service_slots
			WHERE service_id = $1 AND slot_date = $2 AND available
			ORDER BY slot_id
		`
	}
	rows, err := r.pool.Query(ctx, query, serviceID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []slotgrid.Slot
	for rows.Next() {
		var s slotgrid.Slot
		if err := rows.Scan(&s.ID, &s.Date, &s.Time, &s.Available); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return slots, nil
}

// Toggle flips availability on one slot and reports whether it existed.
func (r *SlotRepository) Toggle(ctx context.Context, serviceID, slotID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE service_slots
		SET available = NOT available
		WHERE service_id = $1 AND slot_id = $2
	`, serviceID, slotID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// BulkSet sets every slot on date to the given availability and returns
// the number of slots touched.
func (r *SlotRepository) BulkSet(ctx context.Context, serviceID, date string, available bool) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE service_slots
		SET available = $3
		WHERE service_id = $1 AND slot_date = $2
	`, serviceID, date, available)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Book locks the slot row, marks it unavailable and reports whether it
// was available beforehand. pgx.ErrNoRows means the slot does not exist.
func (r *SlotRepository) Book(ctx context.Context, tx pgx.Tx, serviceID, slotID string) (slotgrid.BookOutcome, error) {
	var s slotgrid.Slot
	err := tx.QueryRow(ctx, `
		SELECT slot_id, slot_date, slot_time, available
		FROM service_slots
		WHERE service_id = $1 AND slot_id = $2
		FOR UPDATE
	`, serviceID, slotID).Scan(&s.ID, &s.Date, &s.Time, &s.Available)
	if err != nil {
		return slotgrid.BookOutcome{}, err
	}

	out := slotgrid.BookOutcome{WasAvailable: s.Available}
	if s.Available {
		if _, err := tx.Exec(ctx, `
			UPDATE service_slots
			SET available = false
			WHERE service_id = $1 AND slot_id = $2
		`, serviceID, slotID); err != nil {
			return slotgrid.BookOutcome{}, err
		}
	}
	s.Available = false
	out.Slot = s
	return out, nil
}

// SetAvailable forces one slot to a given availability, used to free a
// slot again when its booking is cancelled. It runs on the caller's
// transaction so the slot only reopens if the cancellation commits.
// Reports whether the slot existed.
func (r *SlotRepository) SetAvailable(ctx context.Context, tx pgx.Tx, serviceID, slotID string, available bool) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE service_slots
		SET available = $3
		WHERE service_id = $1 AND slot_id = $2
	`, serviceID, slotID, available)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
