package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

const testSecret = "test-secret-key-for-jwt-signing"

var testIdentity = domain.Identity{ID: "1", Email: "admin@demo.com", Name: "Admin User", Role: domain.RoleAdmin}

func newTestManager(t *testing.T, now *time.Time) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, 24*time.Hour)
	require.NoError(t, err)
	return tm.WithClock(func() time.Time { return *now })
}

func TestNewTokenManagerRejectsEmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	for _, role := range domain.AllRoles {
		t.Run(string(role), func(t *testing.T) {
			id := testIdentity
			id.Role = role

			token, exp, err := tm.Issue(id)
			require.NoError(t, err)
			assert.True(t, now.Add(24*time.Hour).Equal(exp))

			claims, err := tm.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, id, claims.Identity())
			assert.True(t, now.Equal(claims.IssuedAt.Time))
			assert.True(t, exp.Equal(claims.ExpiresAt.Time))

			again, err := tm.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, claims, again)
		})
	}
}

func TestDecodeExpiryBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	token, exp, err := tm.Issue(testIdentity)
	require.NoError(t, err)

	now = exp.Add(-time.Second)
	_, err = tm.Decode(token)
	require.NoError(t, err)

	now = exp
	_, err = tm.Decode(token)
	require.ErrorIs(t, err, ErrExpired)

	now = exp.Add(time.Hour)
	_, err = tm.Decode(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestDecodeDetectsSignatureTampering(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	token, _, err := tm.Issue(testIdentity)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	for bit := 0; bit < len(sig)*8; bit++ {
		flipped := append([]byte(nil), sig...)
		flipped[bit/8] ^= 1 << (bit % 8)
		tampered := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(flipped)

		claims, err := tm.Decode(tampered)
		require.ErrorIs(t, err, ErrInvalidSignature, "bit %d", bit)
		require.Nil(t, claims)
	}
}

func TestDecodeRejectsForeignTokens(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	other, err := NewTokenManager("another-secret", time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.WithClock(func() time.Time { return now }).Issue(testIdentity)
	require.NoError(t, err)

	_, err = tm.Decode(foreign)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	claims := &Claims{ID: "1", Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tm.Decode(hs512)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Decode(none)
	assert.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	for _, raw := range []string{"", "abc.def", "not-a-valid-jwt"} {
		_, err := tm.Decode(raw)
		assert.ErrorIs(t, err, ErrMalformed, raw)
	}
}

func TestDecodeRejectsUnknownRoleClaim(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	claims := &Claims{ID: "9", Role: domain.Role("root"), RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Decode(signed)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeRequiresExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	claims := &Claims{ID: "1", Role: domain.RoleStaff}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Decode(signed)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	_, _, err := tm.Issue(domain.Identity{ID: "1", Role: "root"})
	assert.Error(t, err)
}
