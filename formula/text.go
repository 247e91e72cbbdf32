package formula

// TextOption adjusts how text comparisons fold case and whitespace.
type TextOption func(*textOptions)

type textOptions struct {
	caseSensitive bool
	noTrim        bool
}

// CaseSensitive keeps both operands as-is instead of wrapping them in LOWER.
func CaseSensitive() TextOption {
	return func(o *textOptions) { o.caseSensitive = true }
}

// NoTrim keeps surrounding whitespace instead of wrapping both operands in TRIM.
func NoTrim() TextOption {
	return func(o *textOptions) { o.noTrim = true }
}

func applyTextOptions(opts []TextOption) textOptions {
	var o textOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fold wraps expr in LOWER and then TRIM as the options ask.
func (o textOptions) fold(expr string) string {
	if !o.caseSensitive {
		expr = "LOWER(" + expr + ")"
	}
	if !o.noTrim {
		expr = "TRIM(" + expr + ")"
	}
	return expr
}

// TextField is a single-line or long text column.
//
// Substring comparisons are case-insensitive and ignore surrounding
// whitespace unless CaseSensitive or NoTrim is given. Equals and NotEquals
// are always exact.
type TextField struct {
	column
}

// NewTextField returns a text field named name.
func NewTextField(name string) TextField {
	return TextField{column{name: name}}
}

func (TextField) Kind() Kind { return KindText }

func (f TextField) Equals(v string) string {
	return f.ref() + "=" + String(v)
}

func (f TextField) NotEquals(v string) string {
	return f.ref() + "!=" + String(v)
}

// Contains holds when v occurs anywhere in the field.
func (f TextField) Contains(v string, opts ...TextOption) string {
	return f.find(v, ">0", opts)
}

func (f TextField) NotContains(v string, opts ...TextOption) string {
	return f.find(v, "=0", opts)
}

// StartsWith holds when the field begins with v.
func (f TextField) StartsWith(v string, opts ...TextOption) string {
	return f.find(v, "=1", opts)
}

func (f TextField) NotStartsWith(v string, opts ...TextOption) string {
	return f.find(v, "!=1", opts)
}

// EndsWith holds when the first occurrence of v sits at the end of the field.
func (f TextField) EndsWith(v string, opts ...TextOption) string {
	return f.endsWith(v, "=", opts)
}

func (f TextField) NotEndsWith(v string, opts ...TextOption) string {
	return f.endsWith(v, "!=", opts)
}

// RegexMatch inserts pattern verbatim as the second argument of REGEX_MATCH.
func (f TextField) RegexMatch(pattern string) string {
	return "REGEX_MATCH(" + f.ref() + ", " + String(pattern) + ")"
}

func (f TextField) find(v, cmp string, opts []TextOption) string {
	o := applyTextOptions(opts)
	return "FIND(" + o.fold(String(v)) + ", " + o.fold(f.ref()) + ")" + cmp
}

func (f TextField) endsWith(v, cmp string, opts []TextOption) string {
	o := applyTextOptions(opts)
	needle := o.fold(String(v))
	haystack := o.fold(f.ref())
	return "FIND(" + needle + ", " + haystack + ") " + cmp +
		" LEN(" + haystack + ") - LEN(" + needle + ") + 1"
}
