package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
)

// Store implements ports.RecordStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*matcher.Record
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*matcher.Record),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, name string, rec *matcher.Record) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := cloneRecord(rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, name string) (*matcher.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[name]
	if !ok {
		return nil, ports.ErrRecordNotFound
	}

	// Copy on read so the caller can't mutate stored records by pointer
	return cloneRecord(rec), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored record names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}

// cloneRecord copies a record and everything it references. Nil fields stay
// nil so a clone compares deep-equal to its source.
func cloneRecord(rec *matcher.Record) *matcher.Record {
	if rec == nil {
		return nil
	}
	out := &matcher.Record{
		Algorithm:     rec.Algorithm,
		Pattern:       rec.Pattern,
		Patterns:      slices.Clone(rec.Patterns),
		Automaton:     cloneAutomatonRecord(rec.Automaton),
		FailFunctions: slices.Clone(rec.FailFunctions),
		PatternMap:    maps.Clone(rec.PatternMap),
	}
	return out
}

func cloneAutomatonRecord(rec *automaton.Record) *automaton.Record {
	if rec == nil {
		return nil
	}
	out := &automaton.Record{
		States:          clonePtr(rec.States),
		Alphabet:        slices.Clone(rec.Alphabet),
		Transitions:     cloneTable(rec.Transitions),
		TransitionKinds: cloneTable(rec.TransitionKinds),
		InitialState:    clonePtr(rec.InitialState),
		AcceptingStates: slices.Clone(rec.AcceptingStates),
	}
	return out
}

func cloneTable[V any](table map[string]map[string]V) map[string]map[string]V {
	if table == nil {
		return nil
	}
	out := make(map[string]map[string]V, len(table))
	for from, row := range table {
		out[from] = maps.Clone(row)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
