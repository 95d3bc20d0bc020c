// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog is the durable, ordered collection of analyzed papers.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Store holds the paper catalog in insertion order, keyed by id. All
// mutations run on one logical thread and rewrite the whole collection
// through the Storage on every change.
type Store struct {
	storage Storage
	papers  []types.Paper
}

// Open loads the catalog from storage. A missing or unparseable payload
// initializes an empty catalog; a parse failure is reported on w as a
// warning, never as a fatal error.
func Open(storage Storage, w io.Writer) (*Store, error) {
	s := &Store{storage: storage}

	data, ok, err := storage.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.papers); err != nil {
		derr := &types.DeserializationError{Err: err}
		fmt.Fprintf(w, "warning: starting with an empty catalog: %v\n", derr)
		s.papers = nil
	}
	return s, nil
}

// List returns the papers in insertion order.
func (s *Store) List() []types.Paper {
	out := make([]types.Paper, len(s.papers))
	copy(out, s.papers)
	return out
}

// Len returns the number of papers in the catalog.
func (s *Store) Len() int {
	return len(s.papers)
}

// Get returns the paper with the given id.
func (s *Store) Get(id int64) (types.Paper, bool) {
	for _, p := range s.papers {
		if p.ID == id {
			return p, true
		}
	}
	return types.Paper{}, false
}

// Add appends paper and persists the collection. The id must not already
// exist; callers generate unique ids.
func (s *Store) Add(paper types.Paper) error {
	for _, p := range s.papers {
		if p.ID == paper.ID {
			return fmt.Errorf("paper %d already exists in catalog", paper.ID)
		}
	}

	s.papers = append(s.papers, paper)
	if err := s.save(); err != nil {
		s.papers = s.papers[:len(s.papers)-1]
		return err
	}
	return nil
}

// Remove deletes the paper with the given id and persists the collection.
// Removing an absent id is a no-op.
func (s *Store) Remove(id int64) error {
	for i, p := range s.papers {
		if p.ID == id {
			removed := s.papers[i]
			s.papers = append(s.papers[:i], s.papers[i+1:]...)
			if err := s.save(); err != nil {
				s.papers = append(s.papers[:i], append([]types.Paper{removed}, s.papers[i:]...)...)
				return err
			}
			return nil
		}
	}
	return nil
}

// Search returns papers whose title or authors contain term
// case-insensitively, preserving their relative order from List.
func (s *Store) Search(term string) []types.Paper {
	needle := strings.ToLower(term)
	var out []types.Paper
	for _, p := range s.papers {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Authors), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) save() error {
	data, err := json.Marshal(s.papers)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	return s.storage.Save(data)
}
