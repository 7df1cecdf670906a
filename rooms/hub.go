package rooms

import (
	"errors"
	"sync"
	"time"

	"roomdrop/core"
	"roomdrop/metrics"

	"github.com/sirupsen/logrus"
)

// Outbound event names on the wire.
const (
	EventText         = "text"
	EventFileUploaded = "file-uploaded"
	EventFileList     = "file-list"
	EventUnauthorized = "unauthorized"
	EventTyping       = "typing"
)

var (
	// ErrUnauthorized rejects a join with the wrong password for a private
	// room. Surfaced to the requester only; nobody else hears about it.
	ErrUnauthorized = errors.New("room password mismatch")

	// ErrUnknownRoom marks an event referencing a room absent from the
	// registry. Treated as a stale client event, not a fault.
	ErrUnknownRoom = errors.New("unknown room")
)

// Emitter delivers one outbound event to one connection. Implementations
// must not block on a slow or disconnected recipient; delivery is
// fire-and-forget per member.
type Emitter interface {
	Emit(connID string, event string, payload any)
}

// Hub owns connection sessions and drives every room operation: joins,
// disconnects, text updates and upload registrations. A connection belongs
// to at most one room at any instant.
type Hub struct {
	registry *Registry
	emitter  Emitter

	mu       sync.Mutex
	sessions map[string]string // connection id -> joined room id
}

func NewHub(registry *Registry, emitter Emitter) *Hub {
	return &Hub{
		registry: registry,
		emitter:  emitter,
		sessions: make(map[string]string),
	}
}

func (h *Hub) Registry() *Registry { return h.registry }

// RoomOf returns the room a connection is currently joined to, if any.
func (h *Hub) RoomOf(connID string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	roomID, ok := h.sessions[connID]
	return roomID, ok
}

// Join moves a connection into a room, creating the room on first use. On
// password mismatch the connection keeps whatever membership it had and the
// requester alone receives an unauthorized event. On success the previous
// membership (if any) is released and the requester is hydrated with the
// room's current text and file list.
func (h *Hub) Join(connID string, req core.JoinRequest) error {
	room := h.registry.GetOrCreate(req.Room, req.Private, req.Password)
	if !room.authorize(req.Password) {
		logrus.WithFields(logrus.Fields{
			"conn_id": connID,
			"room":    req.Room,
		}).Info("Join rejected: wrong password")
		h.emitter.Emit(connID, EventUnauthorized, nil)
		return ErrUnauthorized
	}

	h.leave(connID)

	room.addMember(connID)
	h.mu.Lock()
	h.sessions[connID] = room.ID
	h.mu.Unlock()

	text, files := room.Snapshot()
	h.emitter.Emit(connID, EventText, core.TextUpdate{Text: text})
	h.emitter.Emit(connID, EventFileList, files)
	logrus.WithFields(logrus.Fields{
		"conn_id": connID,
		"room":    room.ID,
		"files":   len(files),
	}).Info("Connection joined room")
	return nil
}

// Disconnect releases the connection's membership and drops its session.
// The room itself is unaffected; rooms live for the process lifetime.
func (h *Hub) Disconnect(connID string) {
	h.leave(connID)
	logrus.WithField("conn_id", connID).Debug("Session destroyed")
}

func (h *Hub) leave(connID string) {
	h.mu.Lock()
	roomID, ok := h.sessions[connID]
	delete(h.sessions, connID)
	h.mu.Unlock()
	if !ok {
		return
	}
	if room, found := h.registry.Get(roomID); found {
		room.removeMember(connID)
	}
}

// UpdateText overwrites the room document and fans the new text out to
// every other member. An update from a connection that has not finished
// joining is silently dropped: a stray update during the join race window
// is expected, not a fault.
func (h *Hub) UpdateText(connID, text string) {
	roomID, ok := h.RoomOf(connID)
	if !ok {
		logrus.WithField("conn_id", connID).Debug("Text update before join, dropped")
		return
	}
	room, found := h.registry.Get(roomID)
	if !found {
		return
	}
	room.SetText(text)
	h.broadcast(room, connID, EventText, core.TextUpdate{Text: text})
}

// Typing relays a typing indicator to the rest of the room. Same drop
// semantics as UpdateText.
func (h *Hub) Typing(connID, user string) {
	roomID, ok := h.RoomOf(connID)
	if !ok {
		return
	}
	room, found := h.registry.Get(roomID)
	if !found {
		return
	}
	h.broadcast(room, connID, EventTyping, user)
}

// RegisterUpload records a stored object against a room and announces it to
// every current member, the uploader included: the uploader's confirmation
// is the broadcast itself. A notification for a room the registry has never
// seen is dropped.
func (h *Hub) RegisterUpload(roomID, key, name string) error {
	room, found := h.registry.Get(roomID)
	if !found {
		logrus.WithFields(logrus.Fields{
			"room": roomID,
			"key":  key,
		}).Debug("Upload notification for unknown room, dropped")
		return ErrUnknownRoom
	}
	rec := core.FileRecord{Key: key, Name: name, UploadedAt: time.Now()}
	if !room.AddFile(rec) {
		logrus.WithFields(logrus.Fields{
			"room": roomID,
			"key":  key,
		}).Warn("Duplicate storage key ignored")
		return nil
	}
	metrics.UploadsRegistered.Inc()
	h.broadcast(room, "", EventFileUploaded, rec.Link())
	logrus.WithFields(logrus.Fields{
		"room": roomID,
		"key":  key,
		"name": name,
	}).Info("Upload registered")
	return nil
}

func (h *Hub) broadcast(room *Room, except string, event string, payload any) {
	for _, id := range room.membersExcept(except) {
		h.emitter.Emit(id, event, payload)
		metrics.EventsBroadcast.WithLabelValues(event).Inc()
	}
}
