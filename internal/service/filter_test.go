package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

func TestParseFilterString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.FilterClause
	}{
		{
			name:  "empty input yields no clauses",
			input: "",
			want:  nil,
		},
		{
			name:  "single numeric clause parses value as float",
			input: "length:gt:1000",
			want:  []types.FilterClause{{Name: "length", Op: types.OpGt, Value: float64(1000)}},
		},
		{
			name:  "like keeps the raw string even when numeric",
			input: "symbol:like:1000",
			want:  []types.FilterClause{{Name: "symbol", Op: types.OpLike, Value: "1000"}},
		},
		{
			name:  "numeric operator with non-numeric value keeps the raw string",
			input: "symbol:eq:TP53",
			want:  []types.FilterClause{{Name: "symbol", Op: types.OpEq, Value: "TP53"}},
		},
		{
			name:  "order is preserved and duplicates are allowed",
			input: "length:gt:100,length:gt:100,symbol:like:TP",
			want: []types.FilterClause{
				{Name: "length", Op: types.OpGt, Value: float64(100)},
				{Name: "length", Op: types.OpGt, Value: float64(100)},
				{Name: "symbol", Op: types.OpLike, Value: "TP"},
			},
		},
		{
			name:  "malformed segments are dropped without affecting siblings",
			input: "length:gt:1000,badclause,also:bad,symbol:like:TP",
			want: []types.FilterClause{
				{Name: "length", Op: types.OpGt, Value: float64(1000)},
				{Name: "symbol", Op: types.OpLike, Value: "TP"},
			},
		},
		{
			name:  "empty segments are skipped",
			input: ",,length:ge:5,",
			want:  []types.FilterClause{{Name: "length", Op: types.OpGe, Value: float64(5)}},
		},
		{
			name:  "unknown operator is dropped",
			input: "length:between:1..2,symbol:eq:X",
			want:  []types.FilterClause{{Name: "symbol", Op: types.OpEq, Value: "X"}},
		},
		{
			name:  "value may itself contain colons",
			input: "date:eq:2024-01-02T10:11:12",
			want:  []types.FilterClause{{Name: "date", Op: types.OpEq, Value: "2024-01-02T10:11:12"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilterString(tt.input))
		})
	}
}

func TestParseFilterStringIsIdempotent(t *testing.T) {
	input := "length:gt:1000,symbol:like:TP,junk"
	first := ParseFilterString(input)
	second := ParseFilterString(input)
	assert.Equal(t, first, second)
}
