package domain

import "time"

// Identity is the public profile of an account. It is what gets embedded in a token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// CredentialRecord pairs an identity with its password digest.
type CredentialRecord struct {
	Identity
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
