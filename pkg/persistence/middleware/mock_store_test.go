package middleware_test

import (
	"context"

	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string]*matcher.Record
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*matcher.Record),
	}
}

func (s *MockStore) Save(ctx context.Context, name string, rec *matcher.Record) error {
	s.data[name] = rec
	return nil
}

func (s *MockStore) Load(ctx context.Context, name string) (*matcher.Record, error) {
	rec, ok := s.data[name]
	if !ok {
		return nil, ports.ErrRecordNotFound
	}
	return rec, nil
}

func (s *MockStore) Delete(ctx context.Context, name string) error {
	delete(s.data, name)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.RecordStore = (*MockStore)(nil)
