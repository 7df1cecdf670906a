package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// memStore keeps uploaded objects in process memory. Useful for tests and
// throwaway deployments; everything is lost on restart.
type memStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(ctx context.Context, key, name string, data io.Reader) error {
	buf, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("failed to read upload data: %w", err)
	}

	s.mu.Lock()
	s.objects[key] = buf
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"key":  key,
		"name": name,
		"size": len(buf),
	}).Info("Object stored")
	return nil
}

func (s *memStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	buf, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		logrus.WithField("key", key).Warn("Object with specified key not found")
		return nil, fmt.Errorf("object with key %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(buf)), nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	logrus.WithField("key", key).Info("Object deleted")
	return nil
}
