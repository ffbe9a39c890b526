package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

// TemplatePostgres is a PostgreSQL implementation of repository.TemplateRepository.
//
// Every template kind stores its own subtree as JSONB in the spec column.
// Uploading a composite template (range, VPC, subnet) also inserts rows for
// all children with parent links, so listings with StandaloneOnly=false can
// surface embedded templates the way standalone ones are.
type TemplatePostgres struct {
	db *sql.DB
}

// NewTemplatePostgres creates a new TemplatePostgres repository.
func NewTemplatePostgres(db *sql.DB) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var _ repository.TemplateRepository = (*TemplatePostgres)(nil)

// --- range templates ---

// CreateRangeTemplate inserts the range row and its full child tree in one
// transaction.
func (r *TemplatePostgres) CreateRangeTemplate(ctx context.Context, t *model.RangeTemplate) (*model.RangeTemplate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	spec, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal range spec: %w", err)
	}

	const q = `
		INSERT INTO range_templates (id, owner_id, name, provider, vnc, vpn, spec, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, q, t.ID, t.OwnerID, t.Name, t.Provider, t.VNC, t.VPN, spec, t.CreatedAt); err != nil {
		return nil, err
	}

	vpc := t.VPC
	vpc.OwnerID = t.OwnerID
	vpc.RangeID = t.ID
	if err := insertVPCTree(ctx, tx, &vpc, t.CreatedAt); err != nil {
		return nil, err
	}
	t.VPC = vpc

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// FindRangeTemplate fetches a range template by ID, owner-scoped unless the
// query owner is empty.
func (r *TemplatePostgres) FindRangeTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.RangeTemplate, error) {
	query := `SELECT id, owner_id, spec, created_at FROM range_templates WHERE id = $1`
	args := []any{id}
	if q.OwnerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, q.OwnerID)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	var (
		t       model.RangeTemplate
		ownerID string
		spec    []byte
		created time.Time
	)
	var tid string
	if err := row.Scan(&tid, &ownerID, &spec, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(spec, &t); err != nil {
		return nil, fmt.Errorf("unmarshal range spec: %w", err)
	}
	t.ID = tid
	t.OwnerID = ownerID
	t.CreatedAt = created
	return &t, nil
}

// ListRangeTemplateHeaders lists header rows for range templates.
func (r *TemplatePostgres) ListRangeTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	return r.listHeaders(ctx, "range_templates", "name", "", q)
}

// DeleteRangeTemplate removes a range template (children cascade).
func (r *TemplatePostgres) DeleteRangeTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	return r.deleteTemplate(ctx, "range_templates", id, q)
}

// --- vpc templates ---

// CreateVPCTemplate inserts a standalone VPC template and its children.
func (r *TemplatePostgres) CreateVPCTemplate(ctx context.Context, t *model.VPCTemplate) (*model.VPCTemplate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if err := insertVPCTree(ctx, tx, t, t.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// FindVPCTemplate fetches a VPC template by ID.
func (r *TemplatePostgres) FindVPCTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.VPCTemplate, error) {
	query := `SELECT id, owner_id, spec, created_at FROM vpc_templates WHERE id = $1`
	args := []any{id}
	if q.OwnerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, q.OwnerID)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	var (
		t       model.VPCTemplate
		tid     string
		ownerID string
		spec    []byte
		created time.Time
	)
	if err := row.Scan(&tid, &ownerID, &spec, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(spec, &t); err != nil {
		return nil, fmt.Errorf("unmarshal vpc spec: %w", err)
	}
	t.ID = tid
	t.OwnerID = ownerID
	t.CreatedAt = created
	return &t, nil
}

// ListVPCTemplateHeaders lists header rows for VPC templates.
func (r *TemplatePostgres) ListVPCTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	return r.listHeaders(ctx, "vpc_templates", "name", "range_id", q)
}

// DeleteVPCTemplate removes a VPC template (children cascade).
func (r *TemplatePostgres) DeleteVPCTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	return r.deleteTemplate(ctx, "vpc_templates", id, q)
}

// --- subnet templates ---

// CreateSubnetTemplate inserts a standalone subnet template and its hosts.
func (r *TemplatePostgres) CreateSubnetTemplate(ctx context.Context, t *model.SubnetTemplate) (*model.SubnetTemplate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if err := insertSubnetTree(ctx, tx, t, t.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// FindSubnetTemplate fetches a subnet template by ID.
func (r *TemplatePostgres) FindSubnetTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.SubnetTemplate, error) {
	query := `SELECT id, owner_id, spec, created_at FROM subnet_templates WHERE id = $1`
	args := []any{id}
	if q.OwnerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, q.OwnerID)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	var (
		t       model.SubnetTemplate
		tid     string
		ownerID string
		spec    []byte
		created time.Time
	)
	if err := row.Scan(&tid, &ownerID, &spec, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(spec, &t); err != nil {
		return nil, fmt.Errorf("unmarshal subnet spec: %w", err)
	}
	t.ID = tid
	t.OwnerID = ownerID
	t.CreatedAt = created
	return &t, nil
}

// ListSubnetTemplateHeaders lists header rows for subnet templates.
func (r *TemplatePostgres) ListSubnetTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	return r.listHeaders(ctx, "subnet_templates", "name", "vpc_id", q)
}

// DeleteSubnetTemplate removes a subnet template (hosts cascade).
func (r *TemplatePostgres) DeleteSubnetTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	return r.deleteTemplate(ctx, "subnet_templates", id, q)
}

// --- host templates ---

// CreateHostTemplate inserts a standalone host template.
func (r *TemplatePostgres) CreateHostTemplate(ctx context.Context, t *model.HostTemplate) (*model.HostTemplate, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if err := insertHost(ctx, r.db, t, t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// FindHostTemplate fetches a host template by ID.
func (r *TemplatePostgres) FindHostTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.HostTemplate, error) {
	query := `SELECT id, owner_id, spec, created_at FROM host_templates WHERE id = $1`
	args := []any{id}
	if q.OwnerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, q.OwnerID)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	var (
		t       model.HostTemplate
		tid     string
		ownerID string
		spec    []byte
		created time.Time
	)
	if err := row.Scan(&tid, &ownerID, &spec, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(spec, &t); err != nil {
		return nil, fmt.Errorf("unmarshal host spec: %w", err)
	}
	t.ID = tid
	t.OwnerID = ownerID
	t.CreatedAt = created
	return &t, nil
}

// ListHostTemplateHeaders lists header rows for host templates.
func (r *TemplatePostgres) ListHostTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	return r.listHeaders(ctx, "host_templates", "hostname", "subnet_id", q)
}

// DeleteHostTemplate removes a host template.
func (r *TemplatePostgres) DeleteHostTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	return r.deleteTemplate(ctx, "host_templates", id, q)
}

// --- shared helpers ---

// listHeaders builds the header listing query for any template table.
// parentCol is the nullable parent link column; empty means the table has no
// parent (range templates are always standalone).
func (r *TemplatePostgres) listHeaders(ctx context.Context, table, nameCol, parentCol string, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	query := `SELECT id, ` + nameCol + `, created_at FROM ` + table + ` WHERE 1=1`
	args := []any{}
	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if q.StandaloneOnly && parentCol != "" {
		query += ` AND ` + parentCol + ` IS NULL`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	headers := make([]model.TemplateHeader, 0)
	for rows.Next() {
		var h model.TemplateHeader
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return headers, nil
}

// deleteTemplate removes a row by ID with optional owner scoping.
// It returns nil if the row was deleted or did not exist.
func (r *TemplatePostgres) deleteTemplate(ctx context.Context, table, id string, q repository.TemplateQuery) error {
	query := `DELETE FROM ` + table + ` WHERE id = $1`
	args := []any{id}
	if q.OwnerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, q.OwnerID)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertVPCTree(ctx context.Context, tx *sql.Tx, v *model.VPCTemplate, created time.Time) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	spec, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal vpc spec: %w", err)
	}

	const q = `
		INSERT INTO vpc_templates (id, owner_id, range_id, name, cidr, spec, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, q, v.ID, v.OwnerID, v.RangeID, v.Name, v.CIDR, spec, created); err != nil {
		return err
	}

	for i := range v.Subnets {
		v.Subnets[i].OwnerID = v.OwnerID
		v.Subnets[i].VPCID = v.ID
		if err := insertSubnetTree(ctx, tx, &v.Subnets[i], created); err != nil {
			return err
		}
	}
	return nil
}

func insertSubnetTree(ctx context.Context, tx *sql.Tx, s *model.SubnetTemplate, created time.Time) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	spec, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal subnet spec: %w", err)
	}

	const q = `
		INSERT INTO subnet_templates (id, owner_id, vpc_id, name, cidr, spec, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, q, s.ID, s.OwnerID, s.VPCID, s.Name, s.CIDR, spec, created); err != nil {
		return err
	}

	for i := range s.Hosts {
		s.Hosts[i].OwnerID = s.OwnerID
		s.Hosts[i].SubnetID = s.ID
		if err := insertHost(ctx, tx, &s.Hosts[i], created); err != nil {
			return err
		}
	}
	return nil
}

func insertHost(ctx context.Context, db execer, h *model.HostTemplate, created time.Time) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	spec, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal host spec: %w", err)
	}

	const q = `
		INSERT INTO host_templates (id, owner_id, subnet_id, hostname, spec, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`
	_, err = db.ExecContext(ctx, q, h.ID, h.OwnerID, h.SubnetID, h.Hostname, spec, created)
	return err
}
