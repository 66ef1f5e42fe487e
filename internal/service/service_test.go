package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// setupBackend creates an attached backend over a temp directory.
func setupBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
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
