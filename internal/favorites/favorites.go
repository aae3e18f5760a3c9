// Package favorites keeps the user's favorite stations in the local key/value
// store and publishes the full list after every change.
package favorites

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/rubiojr/gasolineras/internal/broadcast"
	"github.com/rubiojr/gasolineras/internal/station"
)

// StorageKey is the key the favorites blob is stored under.
const StorageKey = "gasolineras_favoritos"

// KV is the local key/value store. *storage.Storage satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is an ordered set of station snapshots keyed by station ID.
// Storage failures are logged and never returned.
type Store struct {
	kv  KV
	log *slog.Logger

	mu      sync.Mutex
	items   []station.Station
	updates *broadcast.Broadcaster[[]station.Station]
}

// New loads the favorites from kv. A missing or unreadable blob yields an
// empty set.
func New(ctx context.Context, kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		kv:      kv,
		log:     logger,
		updates: broadcast.New[[]station.Station](),
	}
	s.items = s.load(ctx)
	s.updates.Publish(slices.Clone(s.items))
	return s
}

func (s *Store) load(ctx context.Context) []station.Station {
	data, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Error("Error loading favorites", "error", err)
		return []station.Station{}
	}
	if !ok || data == "" {
		return []station.Station{}
	}

	var items []station.Station
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		s.log.Warn("Discarding unreadable favorites", "error", err)
		return []station.Station{}
	}

	// Drop entries without an ID and duplicates a hand-edited blob may carry.
	seen := make(map[string]struct{}, len(items))
	out := make([]station.Station, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Subscribe returns a subscription that immediately holds the current list
// and receives the full list after every change.
func (s *Store) Subscribe() *broadcast.Subscription[[]station.Station] {
	return s.updates.Subscribe()
}

// List returns the current favorites in insertion order.
func (s *Store) List() []station.Station {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Contains reports whether a station with id is a favorite.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Add appends st unless a favorite with the same ID already exists.
func (s *Store) Add(ctx context.Context, st station.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" || s.indexOf(st.ID) >= 0 {
		return
	}
	s.add(ctx, st)
}

// Remove deletes the favorite with id. The list is re-published even when id
// was not present.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(ctx, id)
}

// Toggle removes st if it is a favorite and adds it otherwise. It reports
// whether st is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, st station.Station) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(st.ID) >= 0 {
		s.remove(ctx, st.ID)
		return false
	}
	if st.ID == "" {
		return false
	}
	s.add(ctx, st)
	return true
}

func (s *Store) add(ctx context.Context, st station.Station) {
	st.Distance = nil
	s.items = append(slices.Clone(s.items), st)
	s.commit(ctx)
}

func (s *Store) remove(ctx context.Context, id string) {
	s.items = slices.DeleteFunc(slices.Clone(s.items), func(it station.Station) bool {
		return it.ID == id
	})
	s.commit(ctx)
}

// Clear removes every favorite and deletes the stored blob.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []station.Station{}
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		s.log.Error("Error clearing favorites", "error", err)
	}
	s.updates.Publish([]station.Station{})
}

// Close unsubscribes every subscriber.
func (s *Store) Close() {
	s.updates.Close()
}

// commit persists and publishes the current list. Callers hold s.mu.
func (s *Store) commit(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("Error encoding favorites", "error", err)
	} else if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		s.log.Error("Error saving favorites", "error", err)
	}
	s.updates.Publish(slices.Clone(s.items))
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it station.Station) bool { return it.ID == id })
}
