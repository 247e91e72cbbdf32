package formula

// NumberField is a number, currency, percent, or rating column.
// Comparison values are built with Int or Float.
type NumberField struct {
	column
}

// NewNumberField returns a number field named name.
func NewNumberField(name string) NumberField {
	return NumberField{column{name: name}}
}

func (NumberField) Kind() Kind { return KindNumber }

// Compare renders {name}<op><v>.
func (f NumberField) Compare(op Operator, v Num) string {
	return f.ref() + string(op) + v.String()
}

func (f NumberField) Equals(v Num) string { return f.Compare(OpEq, v) }
func (f NumberField) NotEquals(v Num) string { return f.Compare(OpNe, v) }
func (f NumberField) GreaterThan(v Num) string { return f.Compare(OpGt, v) }
func (f NumberField) LessThan(v Num) string { return f.Compare(OpLt, v) }
func (f NumberField) GreaterThanOrEquals(v Num) string { return f.Compare(OpGte, v) }
func (f NumberField) LessThanOrEquals(v Num) string { return f.Compare(OpLte, v) }
