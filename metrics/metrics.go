package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomdrop",
		Name:      "rooms_created_total",
		Help:      "Rooms created in the registry. Rooms are never removed, so this also counts rooms currently held.",
	})

	UploadsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomdrop",
		Name:      "uploads_registered_total",
		Help:      "File uploads registered to a room.",
	})

	FilesEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomdrop",
		Name:      "files_evicted_total",
		Help:      "File records evicted by the TTL sweeper.",
	})

	StorageDeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomdrop",
		Name:      "storage_delete_failures_total",
		Help:      "Failed deletions of expired objects in the file store.",
	})

	EventsBroadcast = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roomdrop",
		Name:      "events_broadcast_total",
		Help:      "Outbound events fanned out to room members, by event name.",
	}, []string{"event"})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
