package rooms

import (
	"strings"
	"sync"
	"time"

	"roomdrop/core"
)

// Identifier prefix that marks a room as LAN-scoped. The public singleton
// rooms are "world" and "lan_world"; the prefix is informational only but
// changing it would change which rooms clients treat as shared defaults.
const lanPrefix = "lan_"

// Room is one named synchronization scope: a shared text document plus the
// files uploaded into it. Every field sits behind mu so that a text update,
// an upload registration, a snapshot and a sweep eviction on the same room
// never interleave. Distinct rooms share nothing.
type Room struct {
	ID string

	mu       sync.Mutex
	text     string
	files    []core.FileRecord
	password string
	private  bool
	lan      bool
	members  map[string]struct{}
}

func newRoom(id string, private bool, password string) *Room {
	r := &Room{
		ID:      id,
		private: private,
		lan:     strings.HasPrefix(id, lanPrefix),
		members: make(map[string]struct{}),
	}
	// Public rooms never carry a password, whatever the client sent.
	if private {
		r.password = password
	}
	return r
}

func (r *Room) Private() bool { return r.private }
func (r *Room) LAN() bool     { return r.lan }

// authorize reports whether the given password grants access. Exact match,
// no hashing: rooms are ephemeral and trusted-LAN by design.
func (r *Room) authorize(password string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.private || password == r.password
}

func (r *Room) addMember(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[connID] = struct{}{}
}

// removeMember is idempotent; leaving a room one is not in is a no-op.
func (r *Room) removeMember(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, connID)
}

// membersExcept returns the ids of current members, skipping except when it
// is non-empty. The slice is a snapshot; fan-out happens outside the lock.
func (r *Room) membersExcept(except string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		if except != "" && id == except {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SetText overwrites the whole document. Last writer wins, no merge.
func (r *Room) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
}

// Snapshot returns the current document and file links as one consistent
// point-in-time view, in upload order. A sweep running concurrently either
// fully precedes or fully follows the snapshot.
func (r *Room) Snapshot() (string, []core.FileLink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := make([]core.FileLink, 0, len(r.files))
	for _, f := range r.files {
		links = append(links, f.Link())
	}
	return r.text, links
}

// AddFile appends a record unless its storage key is already present.
// Returns false when the key is a duplicate and the listing is unchanged.
func (r *Room) AddFile(rec core.FileRecord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.Key == rec.Key {
			return false
		}
	}
	r.files = append(r.files, rec)
	return true
}

// evictExpired removes and returns every record older than ttl at now. The
// room's listing is filtered in one critical section so a racing upload or
// snapshot never observes a partially-filtered list.
func (r *Room) evictExpired(now time.Time, ttl time.Duration) []core.FileRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.files[:0]
	var evicted []core.FileRecord
	for _, f := range r.files {
		if now.Sub(f.UploadedAt) > ttl {
			evicted = append(evicted, f)
		} else {
			kept = append(kept, f)
		}
	}
	r.files = kept
	return evicted
}
