// Package memory provides an in-memory acronym repository for tests and
// embedding without SQLite.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/louisbranch/acrobot/internal/services/acronym/storage"
)

// Store keeps acronym entries in process memory. It mirrors the status
// semantics of the SQLite store, including the bounded sampling of ListKeys
// and the case-insensitive ranked Search.
type Store struct {
	mu      sync.Mutex
	entries map[string][]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: map[string][]string{}}
}

// Get returns the full value set stored under key, in insertion order.
func (s *Store) Get(ctx context.Context, key string) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values := append([]string{}, s.entries[key]...)
	if len(values) == 0 {
		return storage.Result{Status: storage.StatusNoKey, Values: values}, nil
	}
	return storage.Result{Status: storage.StatusOK, Values: values}, nil
}

// ListKeys returns at most SampleLimit distinct keys. Map iteration order
// provides the sampling randomness.
func (s *Store) ListKeys(ctx context.Context) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := []string{}
	for key := range s.entries {
		keys = append(keys, key)
		if len(keys) == storage.SampleLimit {
			break
		}
	}
	return storage.Result{Status: storage.StatusOK, Values: keys}, nil
}

// Search matches term against keys and values case-insensitively and ranks
// exact matches over prefix matches over substring matches.
func (s *Store) Search(ctx context.Context, term string) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return storage.Result{Status: storage.StatusNoKey, Values: []string{}}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type match struct {
		key  string
		rank int
	}
	matches := []match{}
	for key, values := range s.entries {
		best := 0
		texts := append([]string{key}, values...)
		for _, text := range texts {
			if rank := rankMatch(strings.ToLower(text), needle); rank > best {
				best = rank
			}
		}
		if best > 0 {
			matches = append(matches, match{key: key, rank: best})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank > matches[j].rank
		}
		return matches[i].key < matches[j].key
	})

	keys := []string{}
	for _, m := range matches {
		keys = append(keys, m.key)
		if len(keys) == storage.SampleLimit {
			break
		}
	}
	if len(keys) == 0 {
		return storage.Result{Status: storage.StatusNoKey, Values: keys}, nil
	}
	return storage.Result{Status: storage.StatusOK, Values: keys}, nil
}

// Add stores the values not already present for key.
func (s *Store) Add(ctx context.Context, key string, values []string) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}
	candidates := distinct(values)
	if len(candidates) == 0 {
		return storage.Result{Status: storage.StatusNoValues}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := map[string]bool{}
	for _, value := range s.entries[key] {
		existing[value] = true
	}
	for _, value := range candidates {
		if !existing[value] {
			s.entries[key] = append(s.entries[key], value)
		}
	}
	return storage.Result{Status: storage.StatusOK}, nil
}

// Remove deletes the given values for key, all or nothing.
func (s *Store) Remove(ctx context.Context, key string, values []string) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}
	requested := distinct(values)
	if len(requested) == 0 {
		return storage.Result{Status: storage.StatusNoValues}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.entries[key]
	if len(existing) == 0 {
		return storage.Result{Status: storage.StatusNoKey}, nil
	}
	present := map[string]bool{}
	for _, value := range existing {
		present[value] = true
	}
	for _, value := range requested {
		if !present[value] {
			return storage.Result{Status: storage.StatusNoValues}, nil
		}
	}

	drop := map[string]bool{}
	for _, value := range requested {
		drop[value] = true
	}
	remaining := []string{}
	for _, value := range existing {
		if !drop[value] {
			remaining = append(remaining, value)
		}
	}
	if len(remaining) == 0 {
		delete(s.entries, key)
	} else {
		s.entries[key] = remaining
	}
	return storage.Result{Status: storage.StatusOK}, nil
}

// Delete removes every value stored under key.
func (s *Store) Delete(ctx context.Context, key string) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries[key]) == 0 {
		return storage.Result{Status: storage.StatusNoKey}, nil
	}
	delete(s.entries, key)
	return storage.Result{Status: storage.StatusOK}, nil
}

func rankMatch(text, needle string) int {
	switch {
	case text == needle:
		return 3
	case strings.HasPrefix(text, needle):
		return 2
	case strings.Contains(text, needle):
		return 1
	default:
		return 0
	}
}

func distinct(values []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}

var _ storage.Repository = (*Store)(nil)
