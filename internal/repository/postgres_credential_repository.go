package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

type postgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCredentialRepository returns a Postgres-backed implementation.
func NewPostgresCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &postgresCredentialRepository{pool: pool}
}

const credentialColumns = `id, email, name, role, password_hash, created_at`

func (r *postgresCredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.CredentialRecord, error) {
	const query = `SELECT ` + credentialColumns + ` FROM credentials WHERE email=$1`
	return r.findOne(ctx, query, email)
}

func (r *postgresCredentialRepository) FindByID(ctx context.Context, id string) (*domain.CredentialRecord, error) {
	const query = `SELECT ` + credentialColumns + ` FROM credentials WHERE id=$1`
	return r.findOne(ctx, query, id)
}

func (r *postgresCredentialRepository) List(ctx context.Context) ([]domain.Identity, error) {
	const query = `SELECT id, email, name, role FROM credentials ORDER BY id`
	return r.listIdentities(ctx, query)
}

func (r *postgresCredentialRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Identity, error) {
	const query = `SELECT id, email, name, role FROM credentials WHERE role=$1 ORDER BY id`
	return r.listIdentities(ctx, query, string(role))
}

func (r *postgresCredentialRepository) findOne(ctx context.Context, query string, arg string) (*domain.CredentialRecord, error) {
	var (
		rec  domain.CredentialRecord
		role string
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&rec.ID,
		&rec.Email,
		&rec.Name,
		&role,
		&rec.PasswordDigest,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("credential %s has unknown role %q", rec.ID, role)
	}
	rec.Role = parsed
	return &rec, nil
}

func (r *postgresCredentialRepository) listIdentities(ctx context.Context, query string, args ...any) ([]domain.Identity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Identity, 0)
	for rows.Next() {
		var (
			id   domain.Identity
			role string
		)
		if err := rows.Scan(&id.ID, &id.Email, &id.Name, &role); err != nil {
			return nil, err
		}
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, fmt.Errorf("credential %s has unknown role %q", id.ID, role)
		}
		id.Role = parsed
		out = append(out, id)
	}
	return out, rows.Err()
}

// SeedPostgres inserts the records, leaving existing emails untouched.
func SeedPostgres(ctx context.Context, pool *pgxpool.Pool, records []domain.CredentialRecord) (int, error) {
	const query = `
        INSERT INTO credentials (id, email, name, role, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (email) DO NOTHING`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query, rec.ID, rec.Email, rec.Name, string(rec.Role), rec.PasswordDigest, rec.CreatedAt)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range records {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("seed credentials: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
