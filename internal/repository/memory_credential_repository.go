package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

type memoryCredentialRepository struct {
	records []domain.CredentialRecord
	byEmail map[string]int
	byID    map[string]int
}

// NewMemoryCredentialRepository indexes the records once. The repository never mutates
// them afterwards, so it is safe for concurrent readers.
func NewMemoryCredentialRepository(records []domain.CredentialRecord) (CredentialRepository, error) {
	repo := &memoryCredentialRepository{
		records: make([]domain.CredentialRecord, len(records)),
		byEmail: make(map[string]int, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(repo.records, records)

	for i, rec := range repo.records {
		if _, dup := repo.byEmail[rec.Email]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, rec.Email)
		}
		if _, dup := repo.byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate account id %q", rec.ID)
		}
		repo.byEmail[rec.Email] = i
		repo.byID[rec.ID] = i
	}
	return repo, nil
}

func (r *memoryCredentialRepository) FindByEmail(_ context.Context, email string) (*domain.CredentialRecord, error) {
	i, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	rec := r.records[i]
	return &rec, nil
}

func (r *memoryCredentialRepository) FindByID(_ context.Context, id string) (*domain.CredentialRecord, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	rec := r.records[i]
	return &rec, nil
}

func (r *memoryCredentialRepository) List(_ context.Context) ([]domain.Identity, error) {
	out := make([]domain.Identity, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Identity)
	}
	return out, nil
}

func (r *memoryCredentialRepository) ListByRole(_ context.Context, role domain.Role) ([]domain.Identity, error) {
	out := make([]domain.Identity, 0)
	for _, rec := range r.records {
		if rec.Role == role {
			out = append(out, rec.Identity)
		}
	}
	return out, nil
}
