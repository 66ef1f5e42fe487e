package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

func TestSeedDemoData(t *testing.T) {
	b := setupBackend(t)

	names, err := SeedDemoData(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"genes", "assays", "experiments"}, names)

	wantRows := map[string]int64{
		"genes":       geneRows,
		"assays":      assayRows,
		"experiments": experimentRows,
	}
	for name, want := range wantRows {
		ds, err := b.Datasets().GetByName(name)
		require.NoError(t, err)
		_, total, err := b.Records().List(RecordQuery{DatasetID: ds.ID, Page: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, want, total, "dataset %s", name)
	}

	t.Run("gene payloads keep their declared key order", func(t *testing.T) {
		ds, err := b.Datasets().GetByName("genes")
		require.NoError(t, err)
		items, _, err := b.Records().List(RecordQuery{DatasetID: ds.ID, Page: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, items, 1)

		keys, err := types.PayloadKeys(items[0].Payload)
		require.NoError(t, err)
		assert.Equal(t, []string{"symbol", "ensembl_id", "length", "gc_content", "is_protein_coding"}, keys)
	})

	t.Run("reseeding starts from an empty catalog", func(t *testing.T) {
		_, err := SeedDemoData(b)
		require.NoError(t, err)
		_, total, err := b.Datasets().List("", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}
