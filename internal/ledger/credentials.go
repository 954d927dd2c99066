package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"pfm/internal/core"
	"pfm/internal/log"
	"pfm/internal/storage"
)

// Credentials maps usernames to password digests.
type Credentials struct {
	store  storage.RecordStore
	logger *log.Logger
}

func NewCredentials(store storage.RecordStore, logger *log.Logger) *Credentials {
	return &Credentials{store: store, logger: log.OrDiscard(logger, log.ComponentAuth)}
}

// HashPassword returns the hex SHA-256 digest of password. It is unsalted and
// fast, so offers little brute-force resistance.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (c *Credentials) find(ctx context.Context, username string) (core.Credential, bool, error) {
	rows, err := c.store.ReadAll(ctx, SetCredentials)
	if err != nil {
		return core.Credential{}, false, err
	}
	for _, r := range rows {
		if len(r) > 0 && r[0] == username {
			return core.Credential{Username: r[0], PasswordHash: field(r, 1)}, true, nil
		}
	}
	return core.Credential{}, false, nil
}

func (c *Credentials) Exists(ctx context.Context, username string) (bool, error) {
	_, ok, err := c.find(ctx, username)
	return ok, err
}

// Verify reports whether password matches the stored digest for username.
func (c *Credentials) Verify(ctx context.Context, username, password string) (bool, error) {
	cred, ok, err := c.find(ctx, username)
	if err != nil || !ok {
		return false, err
	}
	return cred.PasswordHash == HashPassword(password), nil
}

// Register appends a credential row for a new username.
func (c *Credentials) Register(ctx context.Context, username, passwordHash string) error {
	rows, err := c.store.ReadAll(ctx, SetCredentials)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if len(r) > 0 && r[0] == username {
			return fmt.Errorf("username %q: %w", username, core.ErrAlreadyExists)
		}
	}
	rows = append(rows, []string{username, passwordHash})
	if err := c.store.WriteAll(ctx, SetCredentials, CredentialsHeader, rows); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "User registered", log.FieldUsername, username)
	return nil
}

// SetPassword replaces the stored digest for username in place.
func (c *Credentials) SetPassword(ctx context.Context, username, newHash string) error {
	rows, err := c.store.ReadAll(ctx, SetCredentials)
	if err != nil {
		return err
	}
	found := false
	for i, r := range rows {
		if len(r) > 0 && r[0] == username {
			rows[i] = []string{username, newHash}
			found = true
		}
	}
	if !found {
		return fmt.Errorf("user %q: %w", username, core.ErrNotFound)
	}
	if err := c.store.WriteAll(ctx, SetCredentials, CredentialsHeader, rows); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "Password changed", log.FieldUsername, username)
	return nil
}
