package blob

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dharsanguruparan/notevault/internal/model"
)

// MemoryStore implements Store on a mutex-guarded map. It backs tests and
// local runs without a MinIO instance.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*Object

	// FailPuts forces Put to report a storage write error, for exercising
	// the abort-on-blob-failure path in tests.
	FailPuts bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]*Object)}
}

func (m *MemoryStore) Put(_ context.Context, data []byte, name, contentType string, metadata map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts {
		return "", fmt.Errorf("memory store: %w", model.ErrStorageWrite)
	}
	id := uuid.NewString()
	meta := map[string]string{MetaFilename: name}
	for k, v := range metadata {
		meta[k] = v
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[id] = &Object{
		Data:        buf,
		Filename:    name,
		ContentType: contentType,
		Metadata:    meta,
	}
	return id, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Object, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("blob id %q: %w", id, model.ErrInvalidID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[id]
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", id, model.ErrNotFound)
	}
	cp := *obj
	cp.Data = append([]byte(nil), obj.Data...)
	cp.Metadata = make(map[string]string, len(obj.Metadata))
	for k, v := range obj.Metadata {
		cp.Metadata[k] = v
	}
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("blob id %q: %w", id, model.ErrInvalidID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, id)
	return nil
}

func (m *MemoryStore) Rename(ctx context.Context, id, name string) (string, error) {
	old, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}
	meta := old.Metadata
	meta[MetaFilename] = name
	if ext := filepath.Ext(name); ext != "" {
		meta[MetaExtension] = strings.TrimPrefix(ext, ".")
	}
	newID, err := m.Put(ctx, old.Data, name, old.ContentType, meta)
	if err != nil {
		return "", err
	}
	_ = m.Delete(ctx, id)
	return newID, nil
}

// Len reports how many objects are stored, for leak assertions in tests.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
