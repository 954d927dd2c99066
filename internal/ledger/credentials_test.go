package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfm/internal/core"
	"pfm/internal/storage"
)

func TestHashPassword(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashPassword("abc"))
	assert.Equal(t, HashPassword("s3cret!pw"), HashPassword("s3cret!pw"))
	assert.NotEqual(t, HashPassword("a"), HashPassword("b"))
}

func TestCredentialsRegisterVerify(t *testing.T) {
	ctx := context.Background()
	c := NewCredentials(newTestStore(t), nil)

	ok, err := c.Exists(ctx, "anita")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Register(ctx, "anita", HashPassword("s3cret!pw")))

	ok, err = c.Exists(ctx, "anita")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Verify(ctx, "anita", "s3cret!pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Verify(ctx, "anita", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Verify(ctx, "nobody", "s3cret!pw")
	require.NoError(t, err)
	assert.False(t, ok)

	err = c.Register(ctx, "anita", HashPassword("other"))
	assert.ErrorIs(t, err, core.ErrAlreadyExists)
}

func TestCredentialsSetPassword(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := NewCredentials(store, nil)
	require.NoError(t, c.Register(ctx, "anita", HashPassword("old-pass1!")))
	require.NoError(t, c.Register(ctx, "ravi", HashPassword("ravi-pass1!")))

	require.NoError(t, c.SetPassword(ctx, "anita", HashPassword("new-pass1!")))

	ok, err := c.Verify(ctx, "anita", "new-pass1!")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Verify(ctx, "anita", "old-pass1!")
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := store.ReadAll(ctx, SetCredentials)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "anita", rows[0][0], "row order is preserved")
	assert.Equal(t, "ravi", rows[1][0])

	err = c.SetPassword(ctx, "nobody", HashPassword("x"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCredentialsStorageError(t *testing.T) {
	c := NewCredentials(failingStore{}, nil)
	_, err := c.Exists(context.Background(), "anita")
	var serr *storage.StorageError
	assert.True(t, errors.As(err, &serr))
}

func TestProfilesAppendGet(t *testing.T) {
	ctx := context.Background()
	p := NewProfiles(newTestStore(t))

	want := core.Profile{FirstName: "Anita", LastName: "Rao", Age: 30, Email: "anita@example.com", Username: "anita"}
	require.NoError(t, p.Append(ctx, want))

	got, err := p.Get(ctx, "anita")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = p.Get(ctx, "ravi")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
