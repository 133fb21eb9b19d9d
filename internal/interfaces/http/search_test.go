package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/search/milvus"
	"github.com/turtacn/AtomSense/internal/infrastructure/search/opensearch"
	"github.com/turtacn/AtomSense/internal/interfaces/http/handlers"
)

type fakeSimilarity struct {
	gotWidth int
	gotTopK  int
	hits     []milvus.Hit
	err      error
}

func (f *fakeSimilarity) Similar(_ context.Context, fp *fingerprint.Fingerprint, topK int) ([]milvus.Hit, error) {
	f.gotWidth = fp.Length
	f.gotTopK = topK
	return f.hits, f.err
}

type fakeOccurrences struct {
	gotType  string
	gotLimit int
	occs     []opensearch.Occurrence
}

func (f *fakeOccurrences) ByType(_ context.Context, typeName string, limit int) ([]opensearch.Occurrence, error) {
	f.gotType = typeName
	f.gotLimit = limit
	return f.occs, nil
}

func searchRouter(t *testing.T, sim handlers.SimilaritySearcher, occ handlers.OccurrenceSearcher) *gin.Engine {
	t.Helper()
	return NewRouter(RouterConfig{
		SearchHandler: handlers.NewSearchHandler(sim, occ, nil,
			perception.ModePermissive, fingerprint.DefaultRadius, 512),
		Mode: gin.TestMode,
	})
}

func TestSearch_SimilarReturnsHits(t *testing.T) {
	sim := &fakeSimilarity{hits: []milvus.Hit{{ID: "abc", Similarity: 0.91}}}
	r := searchRouter(t, sim, nil)

	body := `{
		"top_k": 5,
		"molecule": {
			"atoms": [{"symbol": "C", "hydrogens": 4}]
		}
	}`
	w := doJSON(t, r, http.MethodPost, "/api/v1/perceptions/similar", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Query string       `json:"query"`
		Hits  []milvus.Hit `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "CH4", res.Query)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "abc", res.Hits[0].ID)

	assert.Equal(t, 512, sim.gotWidth)
	assert.Equal(t, 5, sim.gotTopK)
}

func TestSearch_SimilarRejectsBadInput(t *testing.T) {
	r := searchRouter(t, &fakeSimilarity{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"no molecule", `{}`},
		{"unknown mode", `{"mode": "fuzzy", "molecule": {"atoms": [{"symbol": "C"}]}}`},
		{"malformed json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/perceptions/similar", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestSearch_SimilarWithoutBackendAnswers503(t *testing.T) {
	r := searchRouter(t, nil, &fakeOccurrences{})
	w := doJSON(t, r, http.MethodPost, "/api/v1/perceptions/similar",
		`{"molecule": {"atoms": [{"symbol": "C"}]}}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearch_Occurrences(t *testing.T) {
	occ := &fakeOccurrences{occs: []opensearch.Occurrence{{
		ResultID: "r1", Name: "benzene", Mode: "permissive",
	}}}
	r := searchRouter(t, nil, occ)

	w := doJSON(t, r, http.MethodGet, "/api/v1/types/C.sp2/occurrences?limit=7", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "C.sp2", occ.gotType)
	assert.Equal(t, 7, occ.gotLimit)
	assert.Contains(t, w.Body.String(), "benzene")
}

func TestSearch_OccurrencesRejectsBadLimit(t *testing.T) {
	r := searchRouter(t, nil, &fakeOccurrences{})
	w := doJSON(t, r, http.MethodGet, "/api/v1/types/C.sp2/occurrences?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_OccurrencesWithoutBackendAnswers503(t *testing.T) {
	r := searchRouter(t, &fakeSimilarity{}, nil)
	w := doJSON(t, r, http.MethodGet, "/api/v1/types/C.sp2/occurrences", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
