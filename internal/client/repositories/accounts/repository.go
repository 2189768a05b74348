// Package accounts gives typed access to the account collection and the
// current session kept in a kv.Store.
//
// The collection lives under one key as a JSON array and is always read and
// written whole. Update runs the read-modify-write cycle through
// compare-and-swap, so concurrent writers never lose each other's changes.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cyberdefense/internal/client/models"
	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/kv"
	"github.com/dmitrijs2005/cyberdefense/internal/common"
)

// DefaultMaxRetries bounds the compare-and-swap loop in Update.
const DefaultMaxRetries = 8

type Repository struct {
	store      kv.Store
	maxRetries int
}

func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store, maxRetries: DefaultMaxRetries}
}

// List returns every stored account in insertion order. A missing
// collection reads as empty.
func (r *Repository) List(ctx context.Context) ([]models.Account, error) {
	list, _, err := r.load(ctx)
	return list, err
}

// Update applies fn to the current collection and stores the result.
// If another writer changed the collection in between, fn runs again on the
// fresh copy. An error from fn aborts without writing and is returned as is.
func (r *Repository) Update(ctx context.Context, fn func([]models.Account) ([]models.Account, error)) error {
	for i := 0; i < r.maxRetries; i++ {
		current, raw, err := r.load(ctx)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("%w: encode accounts: %v", common.ErrStoreAccess, err)
		}

		swapped, err := r.store.CompareAndSwap(ctx, common.UsersKey, raw, string(data))
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrStoreAccess, err)
		}
		if swapped {
			return nil
		}
	}
	return common.ErrVersionConflict
}

// load returns the decoded collection together with the raw stored value,
// nil when the key is absent.
func (r *Repository) load(ctx context.Context) ([]models.Account, *string, error) {
	raw, ok, err := r.store.Get(ctx, common.UsersKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrStoreAccess, err)
	}
	if !ok {
		return []models.Account{}, nil, nil
	}

	var list []models.Account
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, nil, fmt.Errorf("%w: malformed %s collection: %v", common.ErrStoreAccess, common.UsersKey, err)
	}
	if list == nil {
		list = []models.Account{}
	}
	return list, &raw, nil
}

// SaveSession overwrites the current session.
func (r *Repository) SaveSession(ctx context.Context, s models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: encode session: %v", common.ErrStoreAccess, err)
	}
	if err := r.store.Set(ctx, common.CurrentUserKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreAccess, err)
	}
	return nil
}

// GetSession returns the current session or common.ErrorNotFound.
func (r *Repository) GetSession(ctx context.Context) (*models.Session, error) {
	raw, ok, err := r.store.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreAccess, err)
	}
	if !ok {
		return nil, common.ErrorNotFound
	}

	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %v", common.ErrStoreAccess, common.CurrentUserKey, err)
	}
	return &s, nil
}

// DeleteSession removes the current session. Missing sessions are ignored.
func (r *Repository) DeleteSession(ctx context.Context) error {
	if err := r.store.Delete(ctx, common.CurrentUserKey); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreAccess, err)
	}
	return nil
}
