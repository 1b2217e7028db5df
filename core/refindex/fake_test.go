package refindex

import (
	"context"
	"errors"
	"sync"
)

// memStore is an in-memory IndexStore. Clearing a hash removes its entry.
type memStore struct {
	mu       sync.Mutex
	entries  []ReferenceEntry
	queryErr error
	failures map[string]error
	cleared  []string
}

func newMemStore(entries ...ReferenceEntry) *memStore {
	return &memStore{entries: entries, failures: map[string]error{}}
}

func (s *memStore) QueryFileReferences(ctx context.Context, softRefPresent bool) ([]ReferenceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []ReferenceEntry
	for _, e := range s.entries {
		if e.IsSoft() == softRefPresent {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) ClearReferenceValue(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = append(s.cleared, hash)
	if err, ok := s.failures[hash]; ok {
		return err
	}
	kept := s.entries[:0]
	found := false
	for _, e := range s.entries {
		if e.Hash == hash {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	if !found {
		return errors.New("reference not found")
	}
	return nil
}

// setProber reports existence from a fixed set of paths and records probes.
type setProber struct {
	files  map[string]struct{}
	probes []string
}

func newSetProber(files ...string) *setProber {
	p := &setProber{files: map[string]struct{}{}}
	for _, f := range files {
		p.files[f] = struct{}{}
	}
	return p
}

func (p *setProber) Exists(ctx context.Context, path string) bool {
	p.probes = append(p.probes, path)
	_, ok := p.files[path]
	return ok
}

type refresherFunc func(ctx context.Context) error

func (f refresherFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}
