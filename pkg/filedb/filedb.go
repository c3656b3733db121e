package filedb

import (
	"Storybrush-Backend/entities"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Data is the whole local store file: one JSON object holding every
// collection. It is read fully into memory, mutated, and rewritten
// wholesale on every write.
type Data struct {
	Users         []*entities.User         `json:"users"`
	Orders        []*entities.Order        `json:"orders"`
	EmailLogs     []*entities.EmailLog     `json:"emailLogs"`
	UserContent   []*entities.ContentItem  `json:"userContent"`
	DiscountCodes []*entities.DiscountCode `json:"discountCodes"`
}

// Store is the local record store, the source of truth. All access is
// single-writer: every read and mutation happens under one mutex, so a
// balance check and the debit that follows it are a single atomic step.
type Store struct {
	path string
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		if err := s.write(&Data{
			Users:         []*entities.User{},
			Orders:        []*entities.Order{},
			EmailLogs:     []*entities.EmailLog{},
			UserContent:   []*entities.ContentItem{},
			DiscountCodes: []*entities.DiscountCode{},
		}); err != nil {
			return nil, err
		}
	}

	// Fail fast on an unreadable or corrupt file
	if _, err := s.read(); err != nil {
		return nil, err
	}

	return s, nil
}

// View runs fn against a snapshot of the store without persisting changes.
func (s *Store) View(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	return fn(data)
}

// Update runs fn under the store lock and rewrites the whole file if fn
// returns nil. An error from fn discards the mutation entirely.
func (s *Store) Update(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.write(data)
}

func (s *Store) read() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return &data, nil
}

func (s *Store) write(data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	// Write to a temp file and rename so a crash mid-write never leaves a
	// truncated store behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
