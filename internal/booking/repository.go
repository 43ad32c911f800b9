package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository is the Postgres appointment ledger.
type Repository struct {
	db  execer
	now func() time.Time
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return newRepository(pool)
}

func newRepository(db execer) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Record inserts a confirmed appointment.
func (r *Repository) Record(ctx context.Context, req Request) error {
	query := `
		INSERT INTO appointments (id, patient_email, doctor_email, doctor_name, time_slot, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), req.PatientEmail, req.DoctorEmail, req.DoctorName, req.TimeSlot, r.now())
	if err != nil {
		return fmt.Errorf("booking: insert appointment: %w", err)
	}
	return nil
}

var _ Ledger = (*Repository)(nil)
