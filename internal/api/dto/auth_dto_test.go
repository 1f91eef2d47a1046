package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLoginRequest(t *testing.T) {
	fields, err := Validate(LoginRequest{Email: "admin@demo.com", Password: "password123"})
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = Validate(LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}

func TestValidateUpdateTaskRequest(t *testing.T) {
	_, err := Validate(UpdateTaskRequest{Status: "In Progress"})
	require.NoError(t, err)

	fields, err := Validate(UpdateTaskRequest{Status: "Archived"})
	require.Error(t, err)
	assert.Contains(t, fields["Status"], "must be one of")
}
