package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// ExportCSV writes every record matching search/sort/filter as CSV, applying
// the same parse, predicate, and sort path as the paginated listing. There is
// no pagination: the export is always the complete filtered set.
//
// The header is "id" followed by the first record's payload keys in document
// order. Later records emit "" for keys they lack; keys absent from the first
// record are omitted from the whole export. The header shape is locked to
// record one — a documented behavior, kept as-is. An empty result writes
// nothing, not even a header.
func (s *RecordService) ExportCSV(w io.Writer, datasetID, search, sort, filterStr string) error {
	items, err := s.backend.Records().ListAll(sqlite.RecordQuery{
		DatasetID: datasetID,
		Search:    search,
		Sort:      sort,
		Filters:   ParseFilterString(filterStr),
	})
	if err != nil {
		return fmt.Errorf("exporting dataset %s: %w", datasetID, err)
	}
	if len(items) == 0 {
		return nil
	}

	keys, err := types.PayloadKeys(items[0].Payload)
	if err != nil {
		return fmt.Errorf("reading header keys: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"id"}, keys...)); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	row := make([]string, 0, len(keys)+1)
	for _, rec := range items {
		payload, err := rec.PayloadMap()
		if err != nil {
			return err
		}
		row = row[:0]
		row = append(row, strconv.FormatInt(rec.ID, 10))
		for _, key := range keys {
			row = append(row, csvValue(payload[key]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for record %d: %w", rec.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// csvValue renders a decoded payload value as a CSV cell. Missing keys and
// JSON nulls both render empty; composite values render as compact JSON.
func csvValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
