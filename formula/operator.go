package formula

import "fmt"

// Operator is a comparison operator of the formula language.
type Operator string

const (
	OpEq  Operator = "="
	OpNe  Operator = "!="
	OpGt  Operator = ">"
	OpLt  Operator = "<"
	OpGte Operator = ">="
	OpLte Operator = "<="
)

// Operators lists every comparison operator.
var Operators = []Operator{OpEq, OpNe, OpGt, OpLt, OpGte, OpLte}

// ParseOperator returns the operator spelled s.
// "<>" is accepted as an alias of "!=".
func ParseOperator(s string) (Operator, error) {
	if s == "<>" {
		return OpNe, nil
	}
	for _, op := range Operators {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown comparison operator %q", s)
}
