package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvpolish/pkg/resume"
)

const defaultLimit = 50

const metaColumns = `id, owner_id, filename, mime_type, size_bytes, storage_uri, content_hash, created_at`

// ResumeRepository хранит резюме, извлечённый текст и распарсенную запись.
// Schema is managed by the goose migrations in pkg/storage/postgres.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (`+metaColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, rs.ID, rs.OwnerID, rs.Filename, rs.MimeType, rs.Size, rs.StorageURI, rs.ContentHash, rs.CreatedAt)
	return err
}

func (r *ResumeRepository) SaveParsed(ctx context.Context, p resume.Parsed) error {
	rec, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if p.ParsedAt.IsZero() {
		p.ParsedAt = time.Now().UTC()
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO parsed_resumes (resume_id, text, record, parsed_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (resume_id) DO UPDATE
SET text = EXCLUDED.text, record = EXCLUDED.record, parsed_at = EXCLUDED.parsed_at
`, p.ResumeID, p.Text, rec, p.ParsedAt)
	return err
}

func (r *ResumeRepository) GetParsed(ctx context.Context, resumeID uuid.UUID) (resume.Parsed, error) {
	row := r.pool.QueryRow(ctx, `
SELECT resume_id, text, record, parsed_at FROM parsed_resumes WHERE resume_id = $1
`, resumeID)
	var (
		p   resume.Parsed
		raw []byte
	)
	if err := row.Scan(&p.ResumeID, &p.Text, &raw, &p.ParsedAt); err != nil {
		return resume.Parsed{}, notFound(err)
	}
	if err := json.Unmarshal(raw, &p.Record); err != nil {
		return resume.Parsed{}, fmt.Errorf("decode record: %w", err)
	}
	p.Record.Normalize()
	p.ParsedAt = p.ParsedAt.UTC()
	return p, nil
}

func (r *ResumeRepository) GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `
SELECT `+metaColumns+` FROM resumes WHERE id = $1 AND owner_id = $2
`, id, ownerID))
}

func (r *ResumeRepository) GetMetaAny(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `
SELECT `+metaColumns+` FROM resumes WHERE id = $1
`, id))
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+metaColumns+`
FROM resumes WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	return collectMeta(rows)
}

func (r *ResumeRepository) ListAll(ctx context.Context, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+metaColumns+`
FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectMeta(rows)
}

func (r *ResumeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `
DELETE FROM resumes WHERE id = $1 AND owner_id = $2
RETURNING `+metaColumns, id, ownerID))
}

func (r *ResumeRepository) DeleteAny(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `
DELETE FROM resumes WHERE id = $1
RETURNING `+metaColumns, id))
}

func scanMeta(row pgx.Row) (resume.Resume, error) {
	var m resume.Resume
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Filename, &m.MimeType, &m.Size, &m.StorageURI, &m.ContentHash, &m.CreatedAt); err != nil {
		return resume.Resume{}, notFound(err)
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func collectMeta(rows pgx.Rows) ([]resume.Resume, error) {
	defer rows.Close()
	res := []resume.Resume{}
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.ErrNotFound
	}
	return err
}
