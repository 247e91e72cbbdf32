package formula

// TextListField is a multiple-select or lookup column rendered as a
// comma-separated list.
//
// List comparisons are case-insensitive unless CaseSensitive is given and are
// never trimmed; NoTrim has no effect.
type TextListField struct {
	column
}

// NewTextListField returns a text list field named name.
func NewTextListField(name string) TextListField {
	return TextListField{column{name: name}}
}

func (TextListField) Kind() Kind { return KindTextList }

// Contains holds when v occurs in the list.
func (f TextListField) Contains(v string, opts ...TextOption) string {
	return f.find(v, ">0", opts)
}

func (f TextListField) NotContains(v string, opts ...TextOption) string {
	return f.find(v, "=0", opts)
}

// ContainsAll holds when every value occurs in the list.
// No values renders AND().
func (f TextListField) ContainsAll(values []string, opts ...TextOption) string {
	return And(f.containsEach(values, opts)...)
}

// ContainsAny holds when at least one value occurs in the list.
// No values renders OR().
func (f TextListField) ContainsAny(values []string, opts ...TextOption) string {
	return Or(f.containsEach(values, opts)...)
}

func (f TextListField) containsEach(values []string, opts []TextOption) []string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, f.Contains(v, opts...))
	}
	return parts
}

func (f TextListField) find(v, cmp string, opts []TextOption) string {
	o := applyTextOptions(opts)
	o.noTrim = true
	return "FIND(" + o.fold(String(v)) + ", " + o.fold(f.ref()) + ")" + cmp
}
