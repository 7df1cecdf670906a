package filesystem

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// fsStore keeps uploaded objects as plain files under basePath, one file
// per storage key.
type fsStore struct {
	basePath string
}

// NewStore creates a new filesystem-based store.
func NewStore(basePath string) *fsStore {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}
	return &fsStore{basePath: basePath}
}

// validKey rejects keys that would escape basePath.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return fmt.Errorf("invalid storage key: must not be empty or a dot directory")
	}
	if path.Base(key) != key {
		return fmt.Errorf("invalid storage key: must not be a path")
	}
	return nil
}

func (s *fsStore) Save(ctx context.Context, key, name string, data io.Reader) error {
	if err := validKey(key); err != nil {
		return err
	}
	filePath := filepath.Join(s.basePath, key)
	log := logrus.WithFields(logrus.Fields{
		"key":       key,
		"name":      name,
		"file_path": filePath,
	})

	f, err := os.Create(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to create object file")
		return err
	}
	defer f.Close()

	written, err := io.Copy(f, data)
	if err != nil {
		log.WithError(err).Error("Failed to write object file")
		return err
	}

	log.WithField("size", written).Info("Object stored")
	return nil
}

func (s *fsStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	filePath := filepath.Join(s.basePath, key)
	log := logrus.WithField("key", key)

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Object with specified key not found")
			return nil, fmt.Errorf("object with key %s not found", key)
		}
		log.WithError(err).Error("Failed to open object file")
		return nil, err
	}
	return f, nil
}

func (s *fsStore) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	filePath := filepath.Join(s.basePath, key)
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			log.Warn("Object file not found for deletion, considered successful.")
			return nil // If it doesn't exist, the goal is achieved.
		}
		log.WithError(err).Error("Failed to delete object file")
		return err
	}

	log.Info("Object deleted")
	return nil
}
