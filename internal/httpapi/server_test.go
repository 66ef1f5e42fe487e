package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// setupServer creates a server over an attached backend in a temp directory.
func setupServer(t *testing.T) (*Server, *sqlite.Backend) {
	t.Helper()
	b := sqlite.NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return New(b), b
}

// seedDataset creates a dataset with the given JSON payloads and returns it
// together with the record ids, in insertion order.
func seedDataset(t *testing.T, b *sqlite.Backend, name string, payloads ...string) (*types.Dataset, []int64) {
	t.Helper()
	ds, err := b.Datasets().Insert(name, "fixture")
	require.NoError(t, err)
	ids := make([]int64, 0, len(payloads))
	for _, p := range payloads {
		id, err := b.Records().Insert(ds.ID, json.RawMessage(p))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ds, ids
}

// doRequest runs a request through the app and returns the response with its
// body fully read.
func doRequest(t *testing.T, s *Server, method, target, user, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(headerUserID, user)
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decodeJSON(t *testing.T, raw []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)
	resp, raw := doRequest(t, s, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestUnknownErrorsStayGeneric(t *testing.T) {
	s, b := setupServer(t)
	// Detaching underneath the server turns every query into a backend error.
	require.NoError(t, b.Detach())

	resp, raw := doRequest(t, s, http.MethodGet, "/api/v1/datasets", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(raw))
}
