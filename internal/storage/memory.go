package storage

import (
	"context"
	"sort"
	"sync"

	"neurograph/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	networks    map[string]model.NetworkRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.networks = make(map[string]model.NetworkRecord)
	return nil
}

func (s *MemoryStore) SaveNetwork(_ context.Context, rec model.NetworkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.SchemaVersion = CurrentSchemaVersion
	rec.CodecVersion = CurrentCodecVersion
	s.networks[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetNetwork(_ context.Context, id string) (model.NetworkRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.networks[id]
	return rec, ok, nil
}

func (s *MemoryStore) ListNetworks(_ context.Context) ([]model.NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.NetworkRecord, 0, len(s.networks))
	for _, rec := range s.networks {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *MemoryStore) DeleteNetwork(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.networks, id)
	return nil
}
