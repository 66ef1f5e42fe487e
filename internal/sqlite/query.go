// Dynamic query construction for record listing, export, and counting.
// Paginated and full-scan reads share the same predicate and sort assembly.
package sqlite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// RecordQuery carries every parameter that shapes a record read. Page and
// Limit are ignored in full-scan mode.
type RecordQuery struct {
	DatasetID string
	Search    string
	Sort      string
	Filters   []types.FilterClause
	Page      int
	Limit     int
}

// safeFieldName reports whether a payload field name can be embedded in a
// quoted JSON path component. SQLite's path parser has no escape syntax, so
// quote and backslash characters are rejected outright rather than escaped.
func safeFieldName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `"\`)
}

// jsonPath builds the json_extract path for a top-level payload key. The
// path is always passed to SQLite as a bound parameter, never interpolated
// into SQL text, so user-supplied field names cannot alter the query shape.
// Callers must check safeFieldName first.
func jsonPath(field string) string {
	return `$."` + field + `"`
}

// fieldText is the SQL expression extracting a payload field as text.
// CAST normalizes JSON numbers and booleans to their text form so that
// eq/ne/like and lexicographic sort all compare the same representation.
const fieldText = `CAST(json_extract(payload, ?) AS TEXT)`

// fieldNumber is the SQL expression extracting a payload field as a number.
// SQLite CAST semantics apply: an absent field yields NULL (the row never
// matches), non-numeric text coerces to 0. This follows the store rather
// than pre-validating field types.
const fieldNumber = `CAST(json_extract(payload, ?) AS REAL)`

// sqlComparators maps numeric filter operators to SQL comparators.
var sqlComparators = map[types.Op]string{
	types.OpGt: ">",
	types.OpGe: ">=",
	types.OpLt: "<",
	types.OpLe: "<=",
}

// wherePredicates builds the WHERE clause body and its arguments from the
// dataset scope, the free-text search, and the filter clauses, all ANDed.
func wherePredicates(q RecordQuery) (string, []any) {
	conditions := []string{"dataset_id = ?"}
	args := []any{q.DatasetID}

	if q.Search != "" {
		// Substring match over the serialized payload as a whole. SQLite
		// LIKE is case-insensitive for ASCII, matching the original ILIKE
		// behavior for the demo data.
		conditions = append(conditions, "payload LIKE '%' || ? || '%'")
		args = append(args, q.Search)
	}

	for _, f := range q.Filters {
		if !safeFieldName(f.Name) {
			// An unembeddable name behaves like an absent field: the clause
			// matches nothing.
			conditions = append(conditions, "0 = 1")
			continue
		}
		switch f.Op {
		case types.OpLike:
			conditions = append(conditions, fieldText+" LIKE '%' || ? || '%'")
			args = append(args, jsonPath(f.Name), textValue(f.Value))
		case types.OpEq:
			conditions = append(conditions, fieldText+" = ?")
			args = append(args, jsonPath(f.Name), textValue(f.Value))
		case types.OpNe:
			conditions = append(conditions, fieldText+" <> ?")
			args = append(args, jsonPath(f.Name), textValue(f.Value))
		case types.OpGt, types.OpGe, types.OpLt, types.OpLe:
			cmp := sqlComparators[f.Op]
			conditions = append(conditions, fieldNumber+" "+cmp+" ?")
			args = append(args, jsonPath(f.Name), f.Value)
		default:
			// Unknown operators never reach the store; the parser drops them.
		}
	}

	return strings.Join(conditions, " AND "), args
}

// orderClause builds the ORDER BY clause and its arguments from a
// "field:direction" sort spec.
//
// A missing or colonless spec falls back to id ASC. The field "id" orders on
// the record's own identifier (numeric, true ordering). Any other field
// orders lexicographically on its text extraction, so numeric-looking values
// sort as strings ("1200" before "800"). Ties fall to SQLite's iteration
// order, which is not guaranteed stable across calls.
func orderClause(sort string) (string, []any) {
	if sort == "" {
		return "ORDER BY id ASC", nil
	}
	field, direction, ok := strings.Cut(sort, ":")
	if !ok {
		return "ORDER BY id ASC", nil
	}

	dir := "DESC"
	if strings.EqualFold(direction, "asc") {
		dir = "ASC"
	}

	if field == "id" {
		return "ORDER BY id " + dir, nil
	}
	if !safeFieldName(field) {
		return "ORDER BY id ASC", nil
	}
	return fmt.Sprintf("ORDER BY %s %s", fieldText, dir), []any{jsonPath(field)}
}

// textValue renders a filter value for text comparison. Parsed numbers use
// the minimal decimal form so eq:1200 matches a payload value of 1200.
func textValue(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
