package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/query"
)

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
	AppendNote(ctx context.Context, id string, note domain.Note) (*domain.Lead, error)
	Delete(ctx context.Context, id string) (*domain.Lead, error)
	ListWithFilter(ctx context.Context, filter query.Filter, limit, offset int) ([]domain.Lead, error)
	Count(ctx context.Context, filter query.Filter) (int, error)
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
	CountBySource(ctx context.Context) (map[domain.LeadSource]int, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Lead, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, subject, message, name, email, phone, status, source, notes, created_at, updated_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	notes, err := marshalNotes(lead.Notes)
	if err != nil {
		return err
	}
	const q = `
        INSERT INTO leads (subject, message, name, email, phone, status, source, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q,
		lead.Subject,
		lead.Message,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Status,
		lead.Source,
		notes,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	q := fmt.Sprintf(`SELECT %s FROM leads WHERE id=$1`, leadColumns)
	return r.fetchSingle(ctx, q, id)
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	q := fmt.Sprintf(`
        UPDATE leads SET status=$2, updated_at=NOW()
        WHERE id=$1
        RETURNING %s`, leadColumns)
	return r.fetchSingle(ctx, q, id, status)
}

func (r *leadRepository) AppendNote(ctx context.Context, id string, note domain.Note) (*domain.Lead, error) {
	appended, err := marshalNotes([]domain.Note{note})
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
        UPDATE leads SET notes = notes || $2::jsonb, updated_at=NOW()
        WHERE id=$1
        RETURNING %s`, leadColumns)
	return r.fetchSingle(ctx, q, id, appended)
}

func (r *leadRepository) Delete(ctx context.Context, id string) (*domain.Lead, error) {
	q := fmt.Sprintf(`DELETE FROM leads WHERE id=$1 RETURNING %s`, leadColumns)
	return r.fetchSingle(ctx, q, id)
}

func (r *leadRepository) ListWithFilter(ctx context.Context, filter query.Filter, limit, offset int) ([]domain.Lead, error) {
	where, args, err := buildWhere(filter)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY created_at DESC`, leadColumns, where)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		q += fmt.Sprintf(" OFFSET %d", offset)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *leadRepository) Count(ctx context.Context, filter query.Filter) (int, error) {
	where, args, err := buildWhere(filter)
	if err != nil {
		return 0, err
	}
	q := fmt.Sprintf(`SELECT COUNT(*) FROM leads WHERE %s`, where)
	var count int
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *leadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error) {
	const q = `SELECT status, COUNT(*) FROM leads GROUP BY status`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.LeadStatus]int)
	for rows.Next() {
		var status domain.LeadStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *leadRepository) CountBySource(ctx context.Context) (map[domain.LeadSource]int, error) {
	const q = `SELECT source, COUNT(*) FROM leads GROUP BY source`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.LeadSource]int)
	for rows.Next() {
		var source domain.LeadSource
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		result[source] = count
	}
	return result, rows.Err()
}

func (r *leadRepository) ListRecent(ctx context.Context, limit int) ([]domain.Lead, error) {
	return r.ListWithFilter(ctx, nil, limit, 0)
}

func (r *leadRepository) fetchSingle(ctx context.Context, q string, args ...any) (*domain.Lead, error) {
	var lead domain.Lead
	var notes []byte
	if err := r.pool.QueryRow(ctx, q, args...).Scan(
		&lead.ID,
		&lead.Subject,
		&lead.Message,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Status,
		&lead.Source,
		&notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalNotes(notes, &lead.Notes); err != nil {
		return nil, err
	}
	return &lead, nil
}

// buildWhere translates the predicate conjunction into SQL clauses. Only
// whitelisted columns may appear in an Equals predicate.
func buildWhere(filter query.Filter) (string, []any, error) {
	clauses := []string{"1=1"}
	args := []any{}

	for _, pred := range filter {
		switch p := pred.(type) {
		case query.Equals:
			switch p.Field {
			case query.FieldStatus, query.FieldSource:
			default:
				return "", nil, fmt.Errorf("unsupported filter field: %s", p.Field)
			}
			args = append(args, p.Value)
			clauses = append(clauses, fmt.Sprintf("%s=$%d", p.Field, len(args)))
		case query.CreatedSince:
			args = append(args, p.From)
			clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
		default:
			return "", nil, fmt.Errorf("unsupported predicate %T", pred)
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		var notes []byte
		if err := rows.Scan(
			&lead.ID,
			&lead.Subject,
			&lead.Message,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Status,
			&lead.Source,
			&notes,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalNotes(notes, &lead.Notes); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

func marshalNotes(notes []domain.Note) ([]byte, error) {
	if notes == nil {
		notes = []domain.Note{}
	}
	return json.Marshal(notes)
}

func unmarshalNotes(raw []byte, dst *[]domain.Note) error {
	if len(raw) == 0 {
		*dst = []domain.Note{}
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []domain.Note{}
	}
	return nil
}
