package types

// Op is a filter clause operator.
type Op string

// Filter operators accepted by the records filter grammar.
const (
	OpEq   Op = "eq"
	OpNe   Op = "ne"
	OpLt   Op = "lt"
	OpGt   Op = "gt"
	OpLe   Op = "le"
	OpGe   Op = "ge"
	OpLike Op = "like"
)

// IsNumeric reports whether the operator attempts a numeric interpretation of
// its value. All operators except like qualify.
func (o Op) IsNumeric() bool {
	return o != OpLike
}

// KnownOp reports whether op is one of the grammar's operators.
func KnownOp(op string) bool {
	switch Op(op) {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe, OpLike:
		return true
	}
	return false
}

// FilterClause is one parsed unit of the filter grammar, built per request
// and discarded after the query runs. Value is a float64 when the raw value
// parsed as a number under a numeric operator, otherwise the raw string.
type FilterClause struct {
	Name  string
	Op    Op
	Value any
}
