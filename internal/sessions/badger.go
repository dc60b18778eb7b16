// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package sessions provides Badger-backed persistence for per-user
// storefront state (carts and wishlists), so sessions survive restarts.
// One database holds both concerns under distinct key prefixes.
package sessions

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/cart"
	"github.com/vastralabs/vastra/internal/models"
	"github.com/vastralabs/vastra/internal/wishlist"
)

const (
	cartKeyPrefix     = "cart/"
	wishlistKeyPrefix = "wishlist/"
)

// Store owns the session database and hands out typed repositories.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the session database at path. An empty path
// opens an in-memory database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(path string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "session-store").Logger(),
	}, nil
}

// Carts returns the cart repository view of the store.
func (s *Store) Carts() cart.Repository {
	return &cartRepo{store: s}
}

// Wishlists returns the wishlist repository view of the store.
func (s *Store) Wishlists() wishlist.Repository {
	return &wishlistRepo{store: s}
}

// RunGC runs one round of Badger value-log garbage collection.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if err == badger.ErrNoRewrite {
		return nil
	}
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// get decodes the value under key into out. Missing keys leave out
// untouched and return false.
func (s *Store) get(key string, out interface{}) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *Store) set(key string, val interface{}) error {
	encoded, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode session value: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encoded)
	})
}

type cartRepo struct {
	store *Store
}

func (r *cartRepo) Load(userID string) (models.CartState, error) {
	var state models.CartState
	found, err := r.store.get(cartKeyPrefix+userID, &state)
	if err != nil {
		return models.CartState{}, fmt.Errorf("load cart: %w", err)
	}
	if !found || state.Items == nil {
		state.Items = []models.CartItem{}
	}
	return state, nil
}

func (r *cartRepo) Save(userID string, state models.CartState) error {
	if err := r.store.set(cartKeyPrefix+userID, state); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

type wishlistRepo struct {
	store *Store
}

func (r *wishlistRepo) Load(userID string) (models.WishlistState, error) {
	var state models.WishlistState
	found, err := r.store.get(wishlistKeyPrefix+userID, &state)
	if err != nil {
		return models.WishlistState{}, fmt.Errorf("load wishlist: %w", err)
	}
	if !found || state.Items == nil {
		state.Items = []models.WishlistItem{}
	}
	return state, nil
}

func (r *wishlistRepo) Save(userID string, state models.WishlistState) error {
	if err := r.store.set(wishlistKeyPrefix+userID, state); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	return nil
}
