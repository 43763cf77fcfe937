package watchlist

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store owns the per-chat watchlists: an ordered list of unique symbols per
// chat identifier. State lives in memory and is rewritten to disk in full on
// every mutation. The mutex keeps each read-modify-persist a critical section.
type Store struct {
	mu       sync.Mutex
	filePath string
	lists    map[string][]string
}

// NewStore loads persisted watchlists from filePath. A missing or corrupt
// file yields an empty store; startup never fails on a storage fault.
func NewStore(filePath string) *Store {
	s := &Store{filePath: filePath, lists: make(map[string][]string)}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read watchlist file %s: %v, starting empty", filePath, err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.lists); err != nil {
		log.Printf("[WARN] parse watchlist file %s: %v, starting empty", filePath, err)
		s.lists = make(map[string][]string)
	}
	return s
}

// Add appends the symbol to the chat's list if not already present and
// persists. Re-adding an existing symbol is a no-op. The returned error is a
// persistence fault only; the in-memory state is updated regardless.
func (s *Store) Add(chatID, symbol string) (added bool, err error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.lists[chatID] {
		if existing == symbol {
			return false, nil
		}
	}
	s.lists[chatID] = append(s.lists[chatID], symbol)
	return true, s.persistLocked()
}

// Remove deletes the symbol from the chat's list if present and persists.
// found reports whether the symbol was there, so the caller can give user
// feedback.
func (s *Store) Remove(chatID, symbol string) (found bool, err error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[chatID]
	for i, existing := range list {
		if existing == symbol {
			s.lists[chatID] = append(list[:i], list[i+1:]...)
			if len(s.lists[chatID]) == 0 {
				delete(s.lists, chatID)
			}
			return true, s.persistLocked()
		}
	}
	return false, nil
}

// List returns a copy of the chat's symbols in insertion order, empty if the
// chat has never added anything.
func (s *Store) List(chatID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[chatID]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// All returns a copy of every chat's watchlist.
func (s *Store) All() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]string, len(s.lists))
	for chatID, list := range s.lists {
		cp := make([]string, len(list))
		copy(cp, list)
		out[chatID] = cp
	}
	return out
}

// persistLocked rewrites the whole mapping atomically: temp file in the same
// directory, then rename. Caller holds the mutex.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.lists, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal watchlists: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	tmp, err := os.CreateTemp(dir, ".watchlist-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
