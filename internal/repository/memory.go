package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharsanguruparan/notevault/internal/model"
	"github.com/dharsanguruparan/notevault/internal/pagination"
)

// MemoryRepository keeps note metadata in a mutex-guarded map. It mirrors the
// Postgres repository's contract for tests and database-free local runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	notes map[string]*model.Note

	// FailInserts forces Insert to report a storage write error.
	FailInserts bool
}

// NewMemoryRepository constructs an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{notes: make(map[string]*model.Note)}
}

func (m *MemoryRepository) Insert(_ context.Context, n *model.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailInserts {
		return fmt.Errorf("memory repository: %w", model.ErrStorageWrite)
	}
	n.ID = uuid.NewString()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	cp := *n
	m.notes[n.ID] = &cp
	return nil
}

func (m *MemoryRepository) Page(_ context.Context, username, query string, p pagination.Params) ([]model.Note, int, error) {
	p = p.Normalize()
	m.mu.RLock()
	matched := make([]model.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if n.Username != username {
			continue
		}
		if query != "" && !matches(n, query) {
			continue
		}
		matched = append(matched, *n)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if p.Sort == pagination.SortAsc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	lo, hi := p.Window(len(matched))
	return matched[lo:hi], len(matched), nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*model.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("note id %q: %w", id, model.ErrInvalidID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, model.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (m *MemoryRepository) GetByFileID(_ context.Context, fileID string) (*model.Note, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, fmt.Errorf("file id %q: %w", fileID, model.ErrInvalidID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.notes {
		if n.FileID == fileID {
			cp := *n
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("file %s: %w", fileID, model.ErrNotFound)
}

func (m *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, fmt.Errorf("note id %q: %w", id, model.ErrInvalidID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return false, nil
	}
	delete(m.notes, id)
	return true, nil
}

func matches(n *model.Note, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{n.Title, n.Content, n.ExtractedText, n.OriginalFilename} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
