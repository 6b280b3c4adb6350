// Package revocation keeps the set of revoked certificate identifiers (UVCIs)
// delivered by CRL updates.
package revocation

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pstrings "greenpass/pkg/platform/strings"
)

// Store is a revoked-UVCI set.
//
// Apply inserts revoked and removes deleted in one update. Inserting an
// identifier that is already present is not an error.
type Store interface {
	Apply(ctx context.Context, revoked, deleted []string) error
	IsRevoked(ctx context.Context, uvci string) (bool, error)
	Clean(ctx context.Context) error
}

var crlUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "greenpass_crl_updates_total",
	Help: "Identifiers applied to the revocation store, by operation",
}, []string{"op"})

func recordApply(revoked, deleted int) {
	if revoked > 0 {
		crlUpdates.WithLabelValues("revoked").Add(float64(revoked))
	}
	if deleted > 0 {
		crlUpdates.WithLabelValues("deleted").Add(float64(deleted))
	}
}

func recordClean() {
	crlUpdates.WithLabelValues("clean").Inc()
}

// normalize trims whitespace and drops empty and repeated identifiers.
func normalize(ids []string) []string {
	return pstrings.DedupeAndTrim(ids)
}
