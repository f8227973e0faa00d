package data

import (
	"context"
	"errors"

	"videomod/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
)

type fraudTermRepo struct {
	data *Data
	log  *log.Helper
}

// NewFraudTermRepo creates a new FraudTermRepo.
func NewFraudTermRepo(data *Data, logger log.Logger) biz.FraudTermRepo {
	return &fraudTermRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Create implements biz.FraudTermRepo.
func (r *fraudTermRepo) Create(ctx context.Context, t *biz.FraudTerm) (*biz.FraudTerm, error) {
	row := r.data.Pool.QueryRow(ctx, `
		INSERT INTO fraud_terms (term, category, added_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (term) DO UPDATE SET category = $2, added_by = $3, updated_at = NOW()
		RETURNING id, term, category, added_by, created_at, updated_at`,
		t.Term, t.Category, t.AddedBy)
	return scanFraudTerm(row)
}

// Delete implements biz.FraudTermRepo.
func (r *fraudTermRepo) Delete(ctx context.Context, term string) error {
	_, err := r.data.Pool.Exec(ctx, `DELETE FROM fraud_terms WHERE term = $1`, term)
	return err
}

// FindByTerm implements biz.FraudTermRepo.
func (r *fraudTermRepo) FindByTerm(ctx context.Context, term string) (*biz.FraudTerm, error) {
	row := r.data.Pool.QueryRow(ctx, `
		SELECT id, term, category, added_by, created_at, updated_at
		FROM fraud_terms WHERE term = $1`, term)
	t, err := scanFraudTerm(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

// List implements biz.FraudTermRepo.
func (r *fraudTermRepo) List(ctx context.Context, category string, limit, offset int32) ([]*biz.FraudTerm, error) {
	var rows pgx.Rows
	var err error

	if category != "" {
		rows, err = r.data.Pool.Query(ctx, `
			SELECT id, term, category, added_by, created_at, updated_at
			FROM fraud_terms WHERE category = $1
			ORDER BY term LIMIT $2 OFFSET $3`, category, limit, offset)
	} else {
		rows, err = r.data.Pool.Query(ctx, `
			SELECT id, term, category, added_by, created_at, updated_at
			FROM fraud_terms ORDER BY term LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFraudTerms(rows)
}

// ListAll implements biz.FraudTermRepo.
func (r *fraudTermRepo) ListAll(ctx context.Context) ([]*biz.FraudTerm, error) {
	rows, err := r.data.Pool.Query(ctx, `
		SELECT id, term, category, added_by, created_at, updated_at
		FROM fraud_terms ORDER BY term`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFraudTerms(rows)
}

// Count implements biz.FraudTermRepo.
func (r *fraudTermRepo) Count(ctx context.Context, category string) (int64, error) {
	var total int64
	var err error
	if category != "" {
		err = r.data.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM fraud_terms WHERE category = $1`, category).Scan(&total)
	} else {
		err = r.data.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM fraud_terms`).Scan(&total)
	}
	return total, err
}

func scanFraudTerm(row pgx.Row) (*biz.FraudTerm, error) {
	var t biz.FraudTerm
	if err := row.Scan(&t.ID, &t.Term, &t.Category, &t.AddedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectFraudTerms(rows pgx.Rows) ([]*biz.FraudTerm, error) {
	var terms []*biz.FraudTerm
	for rows.Next() {
		t, err := scanFraudTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}
