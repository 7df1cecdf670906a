package core

import (
	"context"
	"io"
	"time"
)

type (
	// FileRecord tracks one uploaded file attached to a room. The Key
	// identifies the object in the backing FileStore; Name is the original
	// filename as uploaded and is not necessarily unique within a room.
	FileRecord struct {
		Key        string    `json:"key"`
		Name       string    `json:"name"`
		UploadedAt time.Time `json:"uploadedAt"`
	}

	// FileLink is the link/name pair handed to clients. The core never hands
	// out raw bytes, only links resolved by the HTTP file-serving layer.
	FileLink struct {
		Link string `json:"link"`
		Name string `json:"name"`
	}

	// FileStore persists uploaded file bytes under a storage key.
	// Delete is best-effort from the caller's point of view: the sweeper
	// logs failures and moves on.
	FileStore interface {
		Save(ctx context.Context, key, name string, data io.Reader) error
		Open(ctx context.Context, key string) (io.ReadCloser, error)
		Delete(ctx context.Context, key string) error
	}
)

// Link returns the pair clients use to render and fetch this file.
func (f FileRecord) Link() FileLink {
	return FileLink{Link: "/uploads/" + f.Key, Name: f.Name}
}
