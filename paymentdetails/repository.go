package paymentdetails

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alovak/payment-details/paymentdetails/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

var ErrNotFound = fmt.Errorf("not found")

var ErrConflict = fmt.Errorf("conflict")

//go:embed schema.sql
var schemaSQL string

// Repository stores payment details either in memory or in postgres,
// depending on how it was constructed.
type Repository struct {
	mu      sync.RWMutex
	records map[int64]models.PaymentDetail
	// lastID is never rewound, so deleted ids are not handed out again
	lastID int64

	db *sql.DB
}

func NewRepository() *Repository {
	return &Repository{
		records: make(map[int64]models.PaymentDetail),
	}
}

// NewPGRepository constructs a db-backed repository.
func NewPGRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the payment_details table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// List returns all payment details ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.PaymentDetail, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		out := make([]models.PaymentDetail, 0, len(r.records))
		for _, rec := range r.records {
			out = append(out, rec)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT payment_detail_id, card_owner_name, card_number, expiration_date, security_code
          FROM payment_details
         ORDER BY payment_detail_id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]models.PaymentDetail, 0)
	for rows.Next() {
		var p models.PaymentDetail
		if err := rows.Scan(&p.ID, &p.CardOwnerName, &p.CardNumber, &p.ExpirationDate, &p.SecurityCode); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*models.PaymentDetail, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		rec, ok := r.records[id]
		if !ok {
			return nil, ErrNotFound
		}
		return &rec, nil
	}
	row := r.db.QueryRowContext(ctx, `
        SELECT payment_detail_id, card_owner_name, card_number, expiration_date, security_code
          FROM payment_details
         WHERE payment_detail_id=$1
    `, id)
	var p models.PaymentDetail
	if err := row.Scan(&p.ID, &p.CardOwnerName, &p.CardNumber, &p.ExpirationDate, &p.SecurityCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create stores a new payment detail and returns it with the generated id.
func (r *Repository) Create(ctx context.Context, in models.PaymentDetailInput) (*models.PaymentDetail, error) {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.lastID++
		rec := in.WithID(r.lastID)
		r.records[rec.ID] = rec
		return &rec, nil
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO payment_details(card_owner_name, card_number, expiration_date, security_code)
        VALUES ($1,$2,$3,$4)
        RETURNING payment_detail_id
    `, in.CardOwnerName, in.CardNumber, in.ExpirationDate, in.SecurityCode).Scan(&id)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	rec := in.WithID(id)
	return &rec, nil
}

// Update replaces all editable fields of the record with the given id.
func (r *Repository) Update(ctx context.Context, id int64, p models.PaymentDetail) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.records[id]; !ok {
			return ErrNotFound
		}
		r.records[id] = p.Input().WithID(id)
		return nil
	}
	res, err := r.db.ExecContext(ctx, `
        UPDATE payment_details
           SET card_owner_name = $2,
               card_number     = $3,
               expiration_date = $4,
               security_code   = $5,
               updated_at      = now()
         WHERE payment_detail_id=$1
    `, id, p.CardOwnerName, p.CardNumber, p.ExpirationDate, p.SecurityCode)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.records[id]; !ok {
			return ErrNotFound
		}
		delete(r.records, id)
		return nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_details WHERE payment_detail_id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Ping returns DB readiness
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
