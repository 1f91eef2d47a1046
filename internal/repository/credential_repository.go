package repository

import (
	"context"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

// CredentialRepository is the read-only lookup surface over stored accounts.
// Lookups that find nothing return a nil record and a nil error.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.CredentialRecord, error)
	FindByID(ctx context.Context, id string) (*domain.CredentialRecord, error)
	List(ctx context.Context) ([]domain.Identity, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Identity, error)
}
