package rooms

import (
	"context"
	"time"

	"roomdrop/core"
	"roomdrop/metrics"

	"github.com/sirupsen/logrus"
)

// Retention defaults. Private rooms keep uploads twice as long as the
// public singletons, which churn with strangers' files.
const (
	DefaultSweepInterval = time.Minute
	DefaultPrivateTTL    = 30 * time.Minute
	DefaultPublicTTL     = 15 * time.Minute
)

// Sweeper periodically drops expired file records from every room and asks
// the file store to delete their backing objects. Deletion is best-effort:
// a failure is logged and the record stays evicted, never re-queued.
type Sweeper struct {
	registry   *Registry
	store      core.FileStore
	interval   time.Duration
	privateTTL time.Duration
	publicTTL  time.Duration
}

func NewSweeper(registry *Registry, store core.FileStore, interval, privateTTL, publicTTL time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if privateTTL <= 0 {
		privateTTL = DefaultPrivateTTL
	}
	if publicTTL <= 0 {
		publicTTL = DefaultPublicTTL
	}
	return &Sweeper{
		registry:   registry,
		store:      store,
		interval:   interval,
		privateTTL: privateTTL,
		publicTTL:  publicTTL,
	}
}

// Run ticks until ctx is cancelled. Meant for a dedicated goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"interval":    s.interval,
		"private_ttl": s.privateTTL,
		"public_ttl":  s.publicTTL,
	}).Info("Expiry sweeper running")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep runs a single eviction pass over every room. Eviction on each room
// happens in one critical section; the storage deletions run asynchronously
// so a slow or failing backend never delays the pass.
func (s *Sweeper) Sweep(now time.Time) {
	for _, room := range s.registry.Rooms() {
		ttl := s.publicTTL
		if room.Private() {
			ttl = s.privateTTL
		}
		evicted := room.evictExpired(now, ttl)
		for _, rec := range evicted {
			metrics.FilesEvicted.Inc()
			logrus.WithFields(logrus.Fields{
				"room": room.ID,
				"key":  rec.Key,
				"age":  now.Sub(rec.UploadedAt),
			}).Info("Expired file evicted")
			go s.deleteObject(room.ID, rec.Key)
		}
	}
}

func (s *Sweeper) deleteObject(roomID, key string) {
	if err := s.store.Delete(context.Background(), key); err != nil {
		metrics.StorageDeleteFailures.Inc()
		logrus.WithFields(logrus.Fields{
			"room": roomID,
			"key":  key,
		}).WithError(err).Warn("Failed to delete expired object")
	}
}
