// file: internal/server/matches.go
// version: 1.0.0
// guid: 5d6e7f8a-9b0c-4d1e-8f2a-3b4c5d6e7f8a

package server

import (
	"time"

	"github.com/jdfalk/pokematch/internal/config"
	"github.com/jdfalk/pokematch/internal/engine"
	"github.com/jdfalk/pokematch/internal/metrics"
	"github.com/jdfalk/pokematch/internal/models"
)

// resultFor returns the match result for a dataset, computing it on a
// cache miss. A dataset manifest may override the global exemption list.
func (s *Server) resultFor(ds models.Dataset) models.Result {
	result, hit := s.results.GetOrCompute(ds.Name, func() models.Result {
		return computeResult(ds)
	})
	if hit {
		metrics.IncCacheHit()
	} else {
		metrics.IncCacheMiss()
	}
	return result
}

func computeResult(ds models.Dataset) models.Result {
	metrics.IncComputeStarted(ds.Name)
	start := time.Now()

	exemptions := ds.Exemptions
	if exemptions == nil {
		exemptions = config.AppConfig.Exemptions
	}
	mapping := engine.BestMatches(ds.Creatures, ds.Moves, engine.NewExemptionSet(exemptions...))

	metrics.ObserveComputeDuration(ds.Name, time.Since(start))
	metrics.IncComputeCompleted(ds.Name)
	return models.NewResult(ds, mapping)
}
