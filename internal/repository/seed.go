package repository

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

// ErrDuplicateEmail is returned when two seed accounts share an email.
var ErrDuplicateEmail = errors.New("duplicate email")

// SeedAccount is one plaintext account definition, as written in a seed file.
type SeedAccount struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

type seedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// DefaultSeed returns the three demo accounts.
func DefaultSeed() []SeedAccount {
	return []SeedAccount{
		{ID: "1", Email: "admin@demo.com", Name: "Admin User", Role: "admin", Password: "password123"},
		{ID: "2", Email: "manager@demo.com", Name: "Manager User", Role: "manager", Password: "password123"},
		{ID: "3", Email: "staff@demo.com", Name: "Staff User", Role: "staff", Password: "password123"},
	}
}

// LoadSeedFile reads accounts from a YAML document of the form `accounts: [...]`.
func LoadSeedFile(path string) ([]SeedAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(doc.Accounts) == 0 {
		return nil, fmt.Errorf("seed file %s has no accounts", path)
	}
	return doc.Accounts, nil
}

// BuildRecords validates the accounts and hashes their passwords.
func BuildRecords(accounts []SeedAccount, bcryptCost int) ([]domain.CredentialRecord, error) {
	seen := make(map[string]struct{}, len(accounts))
	now := time.Now().UTC()
	records := make([]domain.CredentialRecord, 0, len(accounts))

	for _, acc := range accounts {
		role, ok := domain.ParseRole(acc.Role)
		if !ok {
			return nil, fmt.Errorf("account %q: unknown role %q", acc.Email, acc.Role)
		}
		if acc.ID == "" || acc.Email == "" || acc.Password == "" {
			return nil, fmt.Errorf("account %q: id, email and password are required", acc.Email)
		}
		if _, dup := seen[acc.Email]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, acc.Email)
		}
		seen[acc.Email] = struct{}{}

		digest, err := auth.HashPassword(acc.Password, bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", acc.Email, err)
		}
		records = append(records, domain.CredentialRecord{
			Identity:       domain.Identity{ID: acc.ID, Email: acc.Email, Name: acc.Name, Role: role},
			PasswordDigest: digest,
			CreatedAt:      now,
		})
	}
	return records, nil
}
