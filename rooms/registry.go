package rooms

import (
	"sync"

	"roomdrop/core"
	"roomdrop/metrics"

	"github.com/sirupsen/logrus"
)

// Registry is the process-wide arena of rooms, indexed by identifier.
// Rooms are created lazily on first reference and never removed; an idle
// room costs one small struct for the life of the process. Constructed
// explicitly so tests get a fresh instance instead of package state.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room named id, creating it on first use. When the
// room already exists the creation parameters are ignored: privacy and
// password are fixed by whoever names the room first.
func (g *Registry) GetOrCreate(id string, private bool, password string) *Room {
	g.mu.RLock()
	room, ok := g.rooms[id]
	g.mu.RUnlock()
	if ok {
		return room
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[id]; ok {
		return room
	}
	room = newRoom(id, private, password)
	g.rooms[id] = room
	metrics.RoomsCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"room":    id,
		"private": private,
		"lan":     room.LAN(),
	}).Info("Room created")
	return room
}

// Get returns the room named id without creating it.
func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[id]
	return room, ok
}

// Snapshot returns a consistent view of a room's text and file links, used
// to hydrate a freshly joined connection.
func (g *Registry) Snapshot(id string) (string, []core.FileLink, bool) {
	room, ok := g.Get(id)
	if !ok {
		return "", nil, false
	}
	text, files := room.Snapshot()
	return text, files, true
}

// Rooms returns a snapshot of all rooms, in no particular order.
func (g *Registry) Rooms() []*Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	all := make([]*Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		all = append(all, room)
	}
	return all
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
