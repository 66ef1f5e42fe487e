package types

import (
	"encoding/json"
	"time"
)

// Dataset is a named collection of semi-structured records. RowCount is a
// cached value maintained by the schema stats engine, not a live count.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RowCount    int64     `json:"row_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field type names inferred by the schema stats engine.
const (
	FieldTypeUnknown = "unknown"
	FieldTypeBoolean = "boolean"
	FieldTypeNumber  = "number"
	FieldTypeString  = "string"
)

// DatasetField is a per-field schema statistic row. Rows are fully recomputed
// by each stats run (delete-then-insert), never incrementally maintained.
type DatasetField struct {
	ID            int64           `json:"id"`
	DatasetID     string          `json:"dataset_id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	NullFrac      float64         `json:"null_frac"`
	DistinctCount int64           `json:"distinct_count"`
	ExampleValue  json.RawMessage `json:"example_value"`
}

// DatasetDetail bundles a dataset with its field statistics.
type DatasetDetail struct {
	Dataset
	Fields []DatasetField `json:"fields"`
}

// DatasetPage is a page of datasets with the total match count.
type DatasetPage struct {
	Items []Dataset `json:"items"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// InferFieldType classifies a decoded JSON value into one of the field type
// names. Classification looks at a single example value only; a field with a
// numeric example and a stray string elsewhere still reports as number.
func InferFieldType(value any) string {
	switch value.(type) {
	case nil:
		return FieldTypeUnknown
	case bool:
		return FieldTypeBoolean
	case float64, json.Number:
		return FieldTypeNumber
	default:
		return FieldTypeString
	}
}
