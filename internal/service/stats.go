package service

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// StatsService recomputes per-field schema statistics for datasets. Each run
// is a full pass: it loads every record, replaces all dataset_fields rows,
// and refreshes the cached row count. Runs for the same dataset must not
// overlap; the CLI trigger serializes them.
type StatsService struct {
	backend *sqlite.Backend
}

// NewStatsService creates a StatsService over the given backend.
func NewStatsService(backend *sqlite.Backend) *StatsService {
	return &StatsService{backend: backend}
}

// fieldAccumulator tracks one payload key across the record scan.
type fieldAccumulator struct {
	nonNull  int64
	distinct map[string]struct{}
	example  json.RawMessage
}

// Recompute rebuilds the field statistics of one dataset.
//
// For every key observed in any payload: null_frac counts records where the
// key is absent or null; distinct_count counts distinct non-null values by
// canonical JSON encoding; example_value is the first non-null value in
// record order; the type is inferred from that example alone. A dataset with
// zero records keeps row_count 0 and no field rows.
func (s *StatsService) Recompute(datasetID string) error {
	records, err := s.backend.Records().ListAll(sqlite.RecordQuery{DatasetID: datasetID})
	if err != nil {
		return fmt.Errorf("loading records of dataset %s: %w", datasetID, err)
	}

	rowCount := int64(len(records))
	if rowCount == 0 {
		return s.backend.Datasets().ReplaceFieldStats(datasetID, 0, nil)
	}

	accumulators := make(map[string]*fieldAccumulator)
	for _, rec := range records {
		payload, err := rec.PayloadMap()
		if err != nil {
			return err
		}
		for key, value := range payload {
			acc := accumulators[key]
			if acc == nil {
				acc = &fieldAccumulator{distinct: make(map[string]struct{})}
				accumulators[key] = acc
			}
			if value == nil {
				continue
			}
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encoding value of field %s: %w", key, err)
			}
			acc.nonNull++
			acc.distinct[string(encoded)] = struct{}{}
			if acc.example == nil {
				acc.example = json.RawMessage(encoded)
			}
		}
	}

	names := make([]string, 0, len(accumulators))
	for name := range accumulators {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]types.DatasetField, 0, len(names))
	for _, name := range names {
		acc := accumulators[name]
		fields = append(fields, types.DatasetField{
			DatasetID:     datasetID,
			Name:          name,
			Type:          exampleType(acc.example),
			NullFrac:      1 - float64(acc.nonNull)/float64(rowCount),
			DistinctCount: int64(len(acc.distinct)),
			ExampleValue:  acc.example,
		})
	}

	if err := s.backend.Datasets().ReplaceFieldStats(datasetID, rowCount, fields); err != nil {
		return fmt.Errorf("storing stats for dataset %s: %w", datasetID, err)
	}
	return nil
}

// RecomputeAll recomputes statistics for every dataset in the catalog,
// one dataset at a time.
func (s *StatsService) RecomputeAll() error {
	datasets, err := s.backend.Datasets().All()
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}
	for _, ds := range datasets {
		if err := s.Recompute(ds.ID); err != nil {
			return err
		}
	}
	return nil
}

// exampleType infers the field type from the encoded example value. A field
// whose every value was null has no example and reports as unknown.
func exampleType(example json.RawMessage) string {
	if example == nil {
		return types.FieldTypeUnknown
	}
	var decoded any
	if err := json.Unmarshal(example, &decoded); err != nil {
		return types.FieldTypeUnknown
	}
	return types.InferFieldType(decoded)
}
