package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfm/internal/core"
)

var anita = core.Registration{
	FirstName: "Anita",
	LastName:  "Rao",
	Age:       "30",
	Email:     "anita@example.com",
	Username:  "anita",
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.auth.Register(ctx, anita, "s3cret!pass"))

	taken, err := f.auth.UsernameTaken(ctx, "anita")
	require.NoError(t, err)
	assert.True(t, taken)

	profile, err := f.auth.Login(ctx, "anita", "s3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, "Anita", profile.FirstName)
	assert.Equal(t, 30, profile.Age)

	_, err = f.auth.Login(ctx, "anita", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "ravi", "s3cret!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.auth.Register(ctx, anita, "s3cret!pass"))

	err := f.auth.Register(ctx, anita, "other!pass1")
	assert.ErrorIs(t, err, core.ErrAlreadyExists)
}

func TestRegisterCollectsValidationErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bad := anita
	bad.Age = "abc"
	err := f.auth.Register(ctx, bad, "weak")
	require.ErrorIs(t, err, core.ErrValidation)

	var verrs core.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "Age must be a number.")
	assert.Contains(t, verrs, "Password must be at least 8 characters.")

	taken, err := f.auth.UsernameTaken(ctx, "anita")
	require.NoError(t, err)
	assert.False(t, taken, "nothing is stored on validation failure")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.auth.Register(ctx, anita, "s3cret!pass"))

	assert.ErrorIs(t, f.auth.ChangePassword(ctx, "anita", "wrong", "n3w!password"), ErrInvalidCredentials)
	assert.ErrorIs(t, f.auth.ChangePassword(ctx, "anita", "s3cret!pass", "short"), core.ErrValidation)

	require.NoError(t, f.auth.ChangePassword(ctx, "anita", "s3cret!pass", "n3w!password"))
	_, err := f.auth.Login(ctx, "anita", "n3w!password")
	require.NoError(t, err)
	_, err = f.auth.Login(ctx, "anita", "s3cret!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
