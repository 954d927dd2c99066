package ledger

import (
	"context"
	"fmt"
	"strconv"

	"pfm/internal/core"
	"pfm/internal/storage"
)

// Profiles stores the personal details captured at registration.
type Profiles struct {
	store storage.RecordStore
}

func NewProfiles(store storage.RecordStore) *Profiles {
	return &Profiles{store: store}
}

func (p *Profiles) Append(ctx context.Context, prof core.Profile) error {
	rows, err := p.store.ReadAll(ctx, SetProfile)
	if err != nil {
		return err
	}
	rows = append(rows, []string{
		prof.FirstName,
		prof.LastName,
		strconv.Itoa(prof.Age),
		prof.Email,
		prof.Username,
	})
	return p.store.WriteAll(ctx, SetProfile, ProfileHeader, rows)
}

// Get returns the profile for username. Age is left zero when the stored
// value is not a number.
func (p *Profiles) Get(ctx context.Context, username string) (core.Profile, error) {
	rows, err := p.store.ReadAll(ctx, SetProfile)
	if err != nil {
		return core.Profile{}, err
	}
	for _, r := range rows {
		if field(r, 4) != username {
			continue
		}
		age, _ := strconv.Atoi(field(r, 2))
		return core.Profile{
			FirstName: field(r, 0),
			LastName:  field(r, 1),
			Age:       age,
			Email:     field(r, 3),
			Username:  username,
		}, nil
	}
	return core.Profile{}, fmt.Errorf("profile %q: %w", username, core.ErrNotFound)
}
