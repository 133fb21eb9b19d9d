package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/interfaces/http/handlers"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dict, err := atomtype.Load()
	require.NoError(t, err)

	svc := app.NewService(perception.NewRegistry(dict, nil))
	return NewRouter(RouterConfig{
		PerceptionHandler: handlers.NewPerceptionHandler(svc, nil, perception.ModePermissive),
		TypesHandler:      handlers.NewTypesHandler(dict),
		HealthHandler:     handlers.NewHealthHandler("test"),
		Mode:              gin.TestMode,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PerceiveMoleculeDocument(t *testing.T) {
	r := testRouter(t)

	body := `{
		"molecule": {
			"name": "methanol",
			"atoms": [
				{"symbol": "C", "hydrogens": 3},
				{"symbol": "O", "hydrogens": 1}
			],
			"bonds": [{"begin": 0, "end": 1, "order": 1}]
		}
	}`
	w := doJSON(t, r, http.MethodPost, "/api/v1/perceptions", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res app.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Atoms, 2)
	assert.Equal(t, "C.sp3", res.Atoms[0].Type)
	assert.Equal(t, "O.sp3", res.Atoms[1].Type)
	assert.Equal(t, "permissive", res.Mode)
}

func TestRouter_PerceiveMolfile(t *testing.T) {
	r := testRouter(t)

	molfile := "methane\n\n\n" +
		"  1  0  0  0  0  0  0  0  0  0999 V2000\n" +
		"    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0\n" +
		"M  END\n"
	payload, err := json.Marshal(map[string]string{"molfile": molfile, "mode": "strict"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/v1/perceptions", string(payload))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res app.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "strict-explicit-hydrogens", res.Mode)
}

func TestRouter_PerceiveRejectsBadInput(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", `{}`, http.StatusBadRequest},
		{"both inputs", `{"molfile": "x", "molecule": {"atoms": [{"symbol": "C"}]}}`, http.StatusBadRequest},
		{"unknown mode", `{"mode": "fuzzy", "molecule": {"atoms": [{"symbol": "C"}]}}`, http.StatusBadRequest},
		{"unknown element", `{"molecule": {"atoms": [{"symbol": "Zz"}]}}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/perceptions", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_ListWithoutStoreAnswers503(t *testing.T) {
	r := testRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/perceptions", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_TypesEndpoints(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/types?element=C", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Count int              `json:"count"`
		Types []*atomtype.Type `json:"types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Greater(t, listing.Count, 0)
	for _, tp := range listing.Types {
		assert.Equal(t, "C", tp.Symbol)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/types/C.sp3", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/types/Nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_HealthProbes(t *testing.T) {
	dict, err := atomtype.Load()
	require.NoError(t, err)
	svc := app.NewService(perception.NewRegistry(dict, nil))

	down := handlers.CheckerFunc{
		CheckerName: "postgres",
		Fn: func(context.Context) error {
			return assert.AnError
		},
	}
	r := NewRouter(RouterConfig{
		PerceptionHandler: handlers.NewPerceptionHandler(svc, nil, perception.ModePermissive),
		HealthHandler:     handlers.NewHealthHandler("test", down),
		Mode:              gin.TestMode,
	})

	w := doJSON(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
