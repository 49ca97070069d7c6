// file: internal/server/handlers.go
// version: 1.1.0
// guid: 6e7f8a9b-0c1d-4e2f-9a3b-4c5d6e7f8a9b

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jdfalk/pokematch/internal/dataset"
	"github.com/jdfalk/pokematch/internal/models"
)

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"datasets": s.catalog.Len(),
	})
}

// listDatasets returns dataset summaries without the full name lists.
func (s *Server) listDatasets(c *gin.Context) {
	list := s.catalog.List()
	items := make([]DatasetSummary, 0, len(list))
	for _, ds := range list {
		items = append(items, DatasetSummary{
			Name:      ds.Name,
			Creatures: len(ds.Creatures),
			Moves:     len(ds.Moves),
		})
	}
	c.JSON(http.StatusOK, ListResponse{Items: items, Count: len(items)})
}

// getMatches returns the computed mapping for one dataset. The optional
// search query narrows the returned creatures for display; it never
// changes what the engine computed.
func (s *Server) getMatches(c *gin.Context) {
	ds, err := s.catalog.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{Message: err.Error(), Code: "dataset_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}

	result := s.resultFor(ds)
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		result = filterResult(result, term)
	}
	c.JSON(http.StatusOK, ItemResponse{Data: result})
}

// reloadDatasets forces a full catalog reload and cache invalidation.
func (s *Server) reloadDatasets(c *gin.Context) {
	if err := s.reload(); err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: err.Error(), Code: "reload_failed"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "datasets reloaded"})
}

// filterResult keeps the creatures whose name contains the term or
// fuzzy-matches it, preserving order.
func filterResult(result models.Result, term string) models.Result {
	filtered := result
	filtered.Creatures = make([]models.CreatureMatches, 0, len(result.Creatures))
	for _, cm := range result.Creatures {
		if strings.Contains(strings.ToLower(cm.Creature), strings.ToLower(term)) ||
			fuzzy.MatchNormalizedFold(term, cm.Creature) {
			filtered.Creatures = append(filtered.Creatures, cm)
		}
	}
	return filtered
}
