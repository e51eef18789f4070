// Package metrics exposes the prometheus instrumentation shared by the store
// and the HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConfigPushes counts remote configuration pushes by result (ok, error).
	ConfigPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "invitado",
		Name:      "config_push_total",
		Help:      "Remote configuration pushes by result.",
	}, []string{"result"})

	// ConfigPushBlocked counts pushes refused by the document size guard.
	ConfigPushBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "invitado",
		Name:      "config_push_blocked_total",
		Help:      "Configuration pushes blocked because the document exceeded the remote size limit.",
	})

	// RSVPSubmissions counts public RSVP submissions by answer (yes, no).
	RSVPSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "invitado",
		Name:      "rsvp_submissions_total",
		Help:      "Public RSVP submissions by answer.",
	}, []string{"answer"})

	// ImportRows counts bulk-import rows by result (ok, error, skipped).
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "invitado",
		Name:      "guest_import_rows_total",
		Help:      "CSV import rows by result.",
	}, []string{"result"})
)

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
