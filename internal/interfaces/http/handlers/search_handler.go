package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/search/milvus"
	"github.com/turtacn/AtomSense/internal/infrastructure/search/opensearch"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// SimilaritySearcher answers nearest-neighbour queries over stored typed
// fingerprints.
type SimilaritySearcher interface {
	Similar(ctx context.Context, fp *fingerprint.Fingerprint, topK int) ([]milvus.Hit, error)
}

// OccurrenceSearcher answers which stored classifications contain an atom
// type.
type OccurrenceSearcher interface {
	ByType(ctx context.Context, typeName string, limit int) ([]opensearch.Occurrence, error)
}

// SearchHandler serves the query side of the two search indexes.  Either
// searcher may be nil when its backend is disabled; the matching endpoint
// then answers 503.
type SearchHandler struct {
	similar     SimilaritySearcher
	occurrences OccurrenceSearcher
	registry    *perception.Registry
	defaultMode perception.Mode
	fpRadius    int
	fpLength    int
}

// NewSearchHandler builds the handler.  radius and length must match the
// parameters the fingerprints were indexed with.
func NewSearchHandler(similar SimilaritySearcher, occurrences OccurrenceSearcher,
	registry *perception.Registry, defaultMode perception.Mode, radius, length int) *SearchHandler {
	if registry == nil {
		registry = perception.NewRegistry(nil, nil)
	}
	if radius <= 0 {
		radius = fingerprint.DefaultRadius
	}
	if length <= 0 {
		length = fingerprint.DefaultLength
	}
	return &SearchHandler{
		similar:     similar,
		occurrences: occurrences,
		registry:    registry,
		defaultMode: defaultMode,
		fpRadius:    radius,
		fpLength:    length,
	}
}

type similarRequest struct {
	perceiveRequest
	TopK int `json:"top_k"`
}

type similarResponse struct {
	Query string       `json:"query"`
	Hits  []milvus.Hit `json:"hits"`
}

// Similar handles POST /perceptions/similar: classify the query molecule,
// fingerprint it, and return the nearest stored molecules.
func (h *SearchHandler) Similar(c *gin.Context) {
	if h.similar == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			errorBody{Code: string(errors.ErrCodeVectorIndex), Message: "similarity search is not configured"})
		return
	}

	var req similarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("malformed request body"))
		return
	}

	mode := h.defaultMode
	if req.Mode != "" {
		parsed, err := perception.ParseMode(req.Mode)
		if err != nil {
			respondError(c, err)
			return
		}
		mode = parsed
	}

	mol, err := buildMolecule(&req.perceiveRequest)
	if err != nil {
		respondError(c, err)
		return
	}

	matcher, err := h.registry.Matcher(mode)
	if err != nil {
		respondError(c, err)
		return
	}
	types, err := matcher.ClassifyAll(mol)
	if err != nil {
		respondError(c, err)
		return
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}

	fp, err := fingerprint.Typed(mol, names, h.fpRadius, h.fpLength)
	if err != nil {
		respondError(c, err)
		return
	}

	hits, err := h.similar.Similar(c.Request.Context(), fp, req.TopK)
	if err != nil {
		respondError(c, err)
		return
	}
	if hits == nil {
		hits = []milvus.Hit{}
	}
	c.JSON(http.StatusOK, similarResponse{Query: mol.Formula(), Hits: hits})
}

// Occurrences handles GET /types/:name/occurrences.
func (h *SearchHandler) Occurrences(c *gin.Context) {
	if h.occurrences == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			errorBody{Code: string(errors.ErrCodeSearchIndex), Message: "occurrence search is not configured"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			respondError(c, errors.InvalidParam("limit must be an integer in [1, 200]"))
			return
		}
		limit = n
	}

	occs, err := h.occurrences.ByType(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if occs == nil {
		occs = []opensearch.Occurrence{}
	}
	c.JSON(http.StatusOK, gin.H{"type": c.Param("name"), "occurrences": occs})
}
