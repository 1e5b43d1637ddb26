// Package store is a flat string-keyed blob store holding the backend's
// collections and the active auth token. Every mutation is a whole-value
// read-modify-write; there is no partial or indexed update at this layer.
package store

import (
	"encoding/json"
	"fmt"
)

// Well-known keys. These names are a persisted-state layout contract shared
// with the original client; do not rename them.
const (
	KeyUsers      = "mock_users"
	KeyArticles   = "mock_articles"
	KeyCategories = "mock_categories"
	KeyAuthToken  = "auth_token"
)

// Store is a flat key-value namespace of JSON-serializable blobs.
type Store interface {
	// Get returns the raw value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set writes the raw value for key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// LoadCollection reads the collection stored under key. On first load, when
// no value exists yet, it seeds the given defaults and persists them so that
// repeated loads are idempotent once seeded.
func LoadCollection[T any](s Store, key string, seed []T) ([]T, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		if err := SaveCollection(s, key, seed); err != nil {
			return nil, err
		}
		return append([]T(nil), seed...), nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return list, nil
}

// SaveCollection writes the whole collection back under key.
func SaveCollection[T any](s Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadToken returns the persisted auth token, or "" when none is stored.
func LoadToken(s Store) (string, error) {
	raw, ok, err := s.Get(KeyAuthToken)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

// SaveToken persists the active auth token.
func SaveToken(s Store, token string) error {
	return s.Set(KeyAuthToken, []byte(token))
}

// ClearToken removes the persisted auth token.
func ClearToken(s Store) error {
	return s.Delete(KeyAuthToken)
}
