package db

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore хранит документы в памяти процесса. Используется в тестах и
// для локального запуска без внешней базы (DOCSTORE_DRIVER=memory).
// Values are normalized through JSON, so documents decode with json tags.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	now         func() time.Time
}

type memoryCollection struct {
	docs  map[string]map[string]any
	order []string
}

type memoryDocument struct {
	id   string
	data map[string]any
}

func (d memoryDocument) ID() string { return d.id }

func (d memoryDocument) DataTo(dst any) error {
	b, err := json.Marshal(d.data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memoryCollection),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return memoryDocument{id: id, data: data}, nil
}

func (s *MemoryStore) Find(_ context.Context, collection, field string, value any) ([]Document, error) {
	want, err := normalize(value)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0)
	c, ok := s.collections[collection]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		got, ok := lookupPath(c.docs[id], field)
		if ok && reflect.DeepEqual(got, want) {
			docs = append(docs, memoryDocument{id: id, data: c.docs[id]})
		}
	}
	return docs, nil
}

func (s *MemoryStore) All(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0)
	c, ok := s.collections[collection]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		docs = append(docs, memoryDocument{id: id, data: c.docs[id]})
	}
	return docs, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := make(map[string]any, len(data))
	for k, v := range data {
		if err := s.apply(doc, k, v); err != nil {
			return err
		}
	}

	c := s.collection(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, updates []Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.applyUpdates(collection, id, updates)
	if err != nil {
		return err
	}
	s.collections[collection].docs[id] = updated
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil
	}
	if _, exists := c.docs[id]; !exists {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Batch применяет все изменения под одной блокировкой: либо все, либо ничего.
func (s *MemoryStore) Batch(_ context.Context, writes []Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct{ collection, id string }
	staged := make(map[key]map[string]any, len(writes))
	order := make([]key, 0, len(writes))

	for _, w := range writes {
		k := key{w.Collection, w.ID}
		base, ok := staged[k]
		if !ok {
			c, exists := s.collections[w.Collection]
			if !exists {
				return ErrNotFound
			}
			base, ok = c.docs[w.ID]
			if !ok {
				return ErrNotFound
			}
			order = append(order, k)
		}
		updated, err := s.applyTo(base, w.Updates)
		if err != nil {
			return err
		}
		staged[k] = updated
	}

	for _, k := range order {
		s.collections[k.collection].docs[k.id] = staged[k]
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) applyUpdates(collection, id string, updates []Update) (map[string]any, error) {
	c, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	current, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.applyTo(current, updates)
}

// applyTo returns a modified copy of doc; doc itself is left untouched.
func (s *MemoryStore) applyTo(doc map[string]any, updates []Update) (map[string]any, error) {
	updated, err := cloneDocument(doc)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		if err := s.apply(updated, u.Path, u.Value); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *MemoryStore) apply(doc map[string]any, path string, value any) error {
	switch t := value.(type) {
	case serverTimestamp:
		v, err := normalize(s.now())
		if err != nil {
			return err
		}
		setPath(doc, path, v)
	case arrayUnion:
		existing, _ := lookupPath(doc, path)
		arr, _ := existing.([]any)
		arr = append([]any{}, arr...)
		for _, raw := range t.values {
			v, err := normalize(raw)
			if err != nil {
				return err
			}
			if !containsValue(arr, v) {
				arr = append(arr, v)
			}
		}
		setPath(doc, path, arr)
	case arrayRemove:
		existing, _ := lookupPath(doc, path)
		arr, _ := existing.([]any)
		removed := make([]any, 0, len(arr))
		values := make([]any, 0, len(t.values))
		for _, raw := range t.values {
			v, err := normalize(raw)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		for _, item := range arr {
			if !containsValue(values, item) {
				removed = append(removed, item)
			}
		}
		setPath(doc, path, removed)
	default:
		v, err := normalize(value)
		if err != nil {
			return err
		}
		setPath(doc, path, v)
	}
	return nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not storable: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneDocument(doc map[string]any) (map[string]any, error) {
	v, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func containsValue(arr []any, v any) bool {
	for _, item := range arr {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

func lookupPath(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = doc
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	m := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
