package opensearch

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/opensearch-project/opensearch-go/v3/opensearchapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/pkg/errors"
)

type fakeDocumentAPI struct {
	ensured map[string]string // index -> mapping
	docs    map[string][]byte // docID -> body
	queries []string
	hits    []opensearchapi.SearchHit
	pingErr error
}

func newFakeDocumentAPI() *fakeDocumentAPI {
	return &fakeDocumentAPI{ensured: map[string]string{}, docs: map[string][]byte{}}
}

func (f *fakeDocumentAPI) EnsureIndex(_ context.Context, index, mapping string) error {
	f.ensured[index] = mapping
	return nil
}

func (f *fakeDocumentAPI) Index(_ context.Context, _ string, docID string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.docs[docID] = data
	return nil
}

func (f *fakeDocumentAPI) Search(_ context.Context, _ string, query io.Reader) (*opensearchapi.SearchResp, error) {
	data, err := io.ReadAll(query)
	if err != nil {
		return nil, err
	}
	f.queries = append(f.queries, string(data))
	resp := &opensearchapi.SearchResp{}
	resp.Hits.Hits = f.hits
	return resp, nil
}

func (f *fakeDocumentAPI) Ping(context.Context) error { return f.pingErr }

func sampleResult() *app.Result {
	return &app.Result{
		ID:             "res-1",
		ContentHash:    "hash1",
		Name:           "methanol",
		Formula:        "CH4O",
		Mode:           "permissive",
		UnmatchedCount: 0,
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Atoms: []app.Assignment{
			{Index: 0, Symbol: "C", Type: "C.sp3", Matched: true},
			{Index: 1, Symbol: "O", Type: "O.sp3", Matched: true},
		},
	}
}

func TestOccurrenceIndexer_IndexResult(t *testing.T) {
	api := newFakeDocumentAPI()
	ix, err := NewOccurrenceIndexer(context.Background(), newClient(api, "occurrences", nil))
	require.NoError(t, err)
	assert.Contains(t, api.ensured, "occurrences")

	require.NoError(t, ix.IndexResult(context.Background(), sampleResult()))

	body, ok := api.docs["hash1:permissive"]
	require.True(t, ok)

	var doc occurrenceDoc
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "res-1", doc.ResultID)
	assert.Equal(t, 2, doc.AtomCount)
	assert.ElementsMatch(t, []string{"C.sp3", "O.sp3"}, doc.Types)
	assert.Equal(t, map[string]int{"C.sp3": 1, "O.sp3": 1}, doc.TypeCounts)
}

func TestOccurrenceIndexer_RequiresResult(t *testing.T) {
	ix, err := NewOccurrenceIndexer(context.Background(), newClient(newFakeDocumentAPI(), "occ", nil))
	require.NoError(t, err)
	assert.True(t, errors.IsCode(ix.IndexResult(context.Background(), nil), errors.ErrCodeBadRequest))
}

func TestSearcher_ByType(t *testing.T) {
	api := newFakeDocumentAPI()
	src, _ := json.Marshal(Occurrence{ResultID: "res-1", ContentHash: "hash1", Mode: "strict"})
	api.hits = []opensearchapi.SearchHit{{Source: src}}

	s := NewSearcher(newClient(api, "occ", nil))
	out, err := s.ByType(context.Background(), "C.sp2", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "res-1", out[0].ResultID)

	require.Len(t, api.queries, 1)
	assert.Contains(t, api.queries[0], `"term": {"types": "C.sp2"}`)
	assert.Contains(t, api.queries[0], `"size": 20`)
}

func TestSearcher_ByTypeRequiresName(t *testing.T) {
	s := NewSearcher(newClient(newFakeDocumentAPI(), "occ", nil))
	_, err := s.ByType(context.Background(), "", 5)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}
