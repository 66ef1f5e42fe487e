package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Record is a single row of a dataset. Payload is an arbitrary JSON object
// kept in its serialized form; filtering, sorting, and search all operate on
// text extracted from it.
type Record struct {
	ID        int64           `json:"id"`
	DatasetID string          `json:"dataset_id"`
	Payload   json.RawMessage `json:"payload"`
}

// RecordPage is a page of records with the total match count.
type RecordPage struct {
	Items []Record `json:"items"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
}

// ErrNotObject is returned when a payload is not a JSON object.
var ErrNotObject = errors.New("payload is not a JSON object")

// PayloadMap decodes the payload into a map. Key order is lost; use
// PayloadKeys when document order matters.
func (r Record) PayloadMap() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Payload, &m); err != nil {
		return nil, fmt.Errorf("decoding payload of record %d: %w", r.ID, err)
	}
	return m, nil
}

// PayloadKeys returns the top-level keys of a JSON object payload in document
// order. Go maps cannot preserve this order, so the raw bytes are token-walked
// instead of unmarshaled.
func PayloadKeys(payload []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in payload object", tok)
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value, descending into nested objects/arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	for dec.More() {
		if d == '{' {
			// Key token.
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	// Closing delimiter.
	_, err = dec.Token()
	return err
}
