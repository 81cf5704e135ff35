// Package state persists small user preferences between runs, the way a
// browser page keeps flat strings in local storage.
package state

import (
	"bytes"
	"encoding/gob"
	"errors"
	"os"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// KeyLastHandle holds the most recently loaded GitHub account.
const KeyLastHandle = "githubUser"

// Store wraps go-cache with GOB persistence. Entries never expire.
type Store struct {
	inner *gocache.Cache
}

// New creates an empty store.
func New() *Store {
	return &Store{inner: gocache.New(gocache.NoExpiration, 0)}
}

// LoadFromFile loads a store from a GOB file. A missing file yields an empty
// store; an undecodable one is logged and replaced with an empty store.
func LoadFromFile(filename string, logger *zap.Logger) (*Store, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	items := map[string]gocache.Item{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&items); err != nil {
		if logger != nil {
			logger.Warn("state decode error, starting fresh", zap.String("file", filename), zap.Error(err))
		}
		return New(), nil
	}
	return &Store{inner: gocache.NewFrom(gocache.NoExpiration, 0, items)}, nil
}

// SaveToFile writes the store to a GOB file.
func (s *Store) SaveToFile(filename string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s.inner.Items()); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0600)
}

// GetString returns the string stored under key.
func (s *Store) GetString(key string) (string, bool) {
	val, found := s.inner.Get(key)
	if !found {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// SetString stores val under key.
func (s *Store) SetString(key, val string) {
	s.inner.Set(key, val, gocache.NoExpiration)
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.inner.Delete(key)
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	return s.inner.ItemCount()
}

// Flush clears all stored keys.
func (s *Store) Flush() {
	s.inner.Flush()
}

// Preferences exposes the store as the panel's last-handle persistence.
type Preferences struct {
	Store *Store
}

// LastHandle returns the persisted handle, if any.
func (p Preferences) LastHandle() string {
	h, _ := p.Store.GetString(KeyLastHandle)
	return h
}

// SetLastHandle persists handle as the last-used identity.
func (p Preferences) SetLastHandle(handle string) {
	p.Store.SetString(KeyLastHandle, handle)
}
