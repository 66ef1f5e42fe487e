package sqlite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

func datasetNames(items []types.Dataset) []string {
	var out []string
	for _, d := range items {
		out = append(out, d.Name)
	}
	return out
}

func TestDatasetList(t *testing.T) {
	b := setupBackend(t)
	// Inserted in this order; List returns newest updated_at first.
	for _, name := range []string{"genes", "assays", "experiments"} {
		_, err := b.Datasets().Insert(name, "demo")
		require.NoError(t, err)
	}

	t.Run("orders by updated_at descending", func(t *testing.T) {
		items, total, err := b.Datasets().List("", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, []string{"experiments", "assays", "genes"}, datasetNames(items))
	})

	t.Run("search narrows by name substring", func(t *testing.T) {
		items, total, err := b.Datasets().List("gen", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, []string{"genes"}, datasetNames(items))
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		_, total, err := b.Datasets().List("GEN", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination applies after search", func(t *testing.T) {
		items, total, err := b.Datasets().List("", 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 1)
	})

	t.Run("duplicate names are rejected by the store", func(t *testing.T) {
		_, err := b.Datasets().Insert("genes", "again")
		require.Error(t, err)
	})
}

func TestDatasetGet(t *testing.T) {
	b := setupBackend(t)
	ds, err := b.Datasets().Insert("genes", "Human genes")
	require.NoError(t, err)

	t.Run("found by id", func(t *testing.T) {
		got, err := b.Datasets().Get(ds.ID)
		require.NoError(t, err)
		assert.Equal(t, "Human genes", got.Description)
	})

	t.Run("found by name", func(t *testing.T) {
		got, err := b.Datasets().GetByName("genes")
		require.NoError(t, err)
		assert.Equal(t, ds.ID, got.ID)
	})

	t.Run("unknown id is ErrNotFound", func(t *testing.T) {
		_, err := b.Datasets().Get("no-such-id")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestReplaceFieldStats(t *testing.T) {
	b := setupBackend(t)
	ds, err := b.Datasets().Insert("genes", "")
	require.NoError(t, err)

	fields := []types.DatasetField{
		{Name: "symbol", Type: types.FieldTypeString, NullFrac: 0, DistinctCount: 5, ExampleValue: json.RawMessage(`"TP53"`)},
		{Name: "length", Type: types.FieldTypeNumber, NullFrac: 0.5, DistinctCount: 2, ExampleValue: json.RawMessage(`1200`)},
	}
	require.NoError(t, b.Datasets().ReplaceFieldStats(ds.ID, 4, fields))

	t.Run("row count and fields are written", func(t *testing.T) {
		got, err := b.Datasets().Get(ds.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.RowCount)

		stats, err := b.Datasets().Fields(ds.ID)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		// Ordered by name, not insertion order.
		assert.Equal(t, "length", stats[0].Name)
		assert.Equal(t, "symbol", stats[1].Name)
		assert.Equal(t, json.RawMessage(`1200`), stats[0].ExampleValue)
	})

	t.Run("replace clears previous rows", func(t *testing.T) {
		require.NoError(t, b.Datasets().ReplaceFieldStats(ds.ID, 0, nil))
		stats, err := b.Datasets().Fields(ds.ID)
		require.NoError(t, err)
		assert.Empty(t, stats)

		got, err := b.Datasets().Get(ds.ID)
		require.NoError(t, err)
		assert.Zero(t, got.RowCount)
	})

	t.Run("unknown dataset is ErrNotFound", func(t *testing.T) {
		err := b.Datasets().ReplaceFieldStats("no-such-id", 1, nil)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
