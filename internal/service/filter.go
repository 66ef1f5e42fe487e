// Package service implements the DataScope domain services: filter grammar
// parsing, record listing and detail, CSV export, schema statistics, and
// bookmarks. Services hold a storage backend injected at construction; no
// package-level state.
package service

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// ParseFilterString parses the filter grammar "name:op:value[,...]" into
// ordered clauses. Malformed segments (not exactly three colon-separated
// parts, or an unknown operator) are dropped silently; a rejected segment
// never fails the request and never affects well-formed siblings.
//
// For every operator except like, the value is parsed as a float64 when
// possible and kept as the raw string otherwise. The comparison of a raw
// string under a numeric operator is left to the store's cast semantics.
func ParseFilterString(filterStr string) []types.FilterClause {
	if filterStr == "" {
		return nil
	}

	var clauses []types.FilterClause
	for _, raw := range strings.Split(filterStr, ",") {
		if raw == "" {
			continue
		}
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 {
			continue
		}
		name, op, value := parts[0], parts[1], parts[2]
		if !types.KnownOp(op) {
			continue
		}

		var parsed any = value
		if types.Op(op).IsNumeric() {
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				parsed = f
			}
		}
		clauses = append(clauses, types.FilterClause{Name: name, Op: types.Op(op), Value: parsed})
	}
	return clauses
}
