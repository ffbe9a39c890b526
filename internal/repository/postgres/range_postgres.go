package postgres

import (
	"context"
	"database/sql"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

// RangePostgres is a PostgreSQL implementation of repository.RangeRepository.
type RangePostgres struct {
	db *sql.DB
}

// NewRangePostgres creates a new RangePostgres repository.
func NewRangePostgres(db *sql.DB) *RangePostgres {
	return &RangePostgres{db: db}
}

var _ repository.RangeRepository = (*RangePostgres)(nil)

const rangeColumns = `id, owner_id, template_id, name, provider, region, state, state_key, plan_key, readme_key, deployed_at`

func scanRange(scan func(dest ...any) error) (*model.Range, error) {
	var rg model.Range
	if err := scan(
		&rg.ID,
		&rg.OwnerID,
		&rg.TemplateID,
		&rg.Name,
		&rg.Provider,
		&rg.Region,
		&rg.State,
		&rg.StateKey,
		&rg.PlanKey,
		&rg.ReadmeKey,
		&rg.DeployedAt,
	); err != nil {
		return nil, err
	}
	return &rg, nil
}

// Create inserts a deployed range row and returns the stored record.
func (r *RangePostgres) Create(ctx context.Context, rg *model.Range) (*model.Range, error) {
	const q = `
		INSERT INTO ranges (id, owner_id, template_id, name, provider, region, state, state_key, plan_key, readme_key, deployed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + rangeColumns
	row := r.db.QueryRowContext(ctx, q,
		rg.ID,
		rg.OwnerID,
		rg.TemplateID,
		rg.Name,
		rg.Provider,
		rg.Region,
		rg.State,
		rg.StateKey,
		rg.PlanKey,
		rg.ReadmeKey,
		rg.DeployedAt,
	)
	return scanRange(row.Scan)
}

// FindByID fetches a range by ID, owner-scoped unless ownerID is empty.
func (r *RangePostgres) FindByID(ctx context.Context, id, ownerID string) (*model.Range, error) {
	query := `SELECT ` + rangeColumns + ` FROM ranges WHERE id = $1`
	args := []any{id}
	if ownerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, ownerID)
	}
	row := r.db.QueryRowContext(ctx, query, args...)
	return scanRange(row.Scan)
}

// List returns ranges owned by ownerID using LIMIT/OFFSET pagination.
func (r *RangePostgres) List(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Range], error) {
	const qCount = `SELECT COUNT(*) FROM ranges WHERE owner_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, ownerID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + rangeColumns + `
		FROM ranges
		WHERE owner_id = $1
		ORDER BY deployed_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, ownerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Range, 0)
	for rows.Next() {
		rg, err := scanRange(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *rg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Range]{Items: items, Total: total}, nil
}

// UpdateState transitions the lifecycle state of a range.
func (r *RangePostgres) UpdateState(ctx context.Context, id string, state model.RangeState) error {
	const q = `UPDATE ranges SET state = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, state)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a range row by ID. Nil if the row did not exist.
func (r *RangePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM ranges WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
