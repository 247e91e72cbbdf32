package recipe

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/roach88/airformula/formula"
)

// CompileError reports an invalid node of a recipe.
type CompileError struct {
	// Path locates the node, e.g. "warning.expr.if.and[1]".
	Path    string
	Message string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func errorf(path, format string, args ...any) *CompileError {
	return &CompileError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Compiler turns recipe documents into formula text.
//
// A Compiler holds no per-document state and may compile documents
// concurrently.
type Compiler struct {
	parser formula.DateParser
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithParser sets the parser for date phrases. Without it, date fields use
// the formula package default.
func WithParser(p formula.DateParser) Option {
	return func(c *Compiler) { c.parser = p }
}

// WithLogger sets the logger for compilation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) { c.logger = l }
}

// NewCompiler creates a Compiler. Logs are discarded unless WithLogger is
// given.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// scope maps declared field names to their descriptors.
type scope map[string]formula.Field

// Compile compiles every formula of doc in order. It stops at the first
// invalid node.
func (c *Compiler) Compile(doc *Document) ([]Formula, error) {
	if doc == nil {
		return nil, errorf("recipe", "cannot compile nil document")
	}

	fields, err := c.bindFields(doc.Fields)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fields declared", "count", len(fields))

	out := make([]Formula, 0, len(doc.Formulas))
	seen := make(map[string]bool, len(doc.Formulas))
	for i, entry := range doc.Formulas {
		path := fmt.Sprintf("formulas[%d]", i)
		if entry.Name == "" {
			return nil, errorf(path, "name is required")
		}
		if seen[entry.Name] {
			return nil, errorf(path, "duplicate formula name %q", entry.Name)
		}
		seen[entry.Name] = true

		text, err := c.compileExpr(fields, entry.Name+".expr", entry.Expr)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("formula compiled", "name", entry.Name, "length", len(text))

		out = append(out, Formula{Name: entry.Name, Description: entry.Description, Text: text})
	}

	return out, nil
}

// CompileExpr compiles a single expression against the declared fields.
func (c *Compiler) CompileExpr(fields map[string]string, e Expr) (string, error) {
	s, err := c.bindFields(fields)
	if err != nil {
		return "", err
	}
	return c.compileExpr(s, "expr", e)
}

// bindFields builds a descriptor for every declared field.
// Names are visited in sorted order so errors are deterministic.
func (c *Compiler) bindFields(decl map[string]string) (scope, error) {
	names := make([]string, 0, len(decl))
	for name := range decl {
		names = append(names, name)
	}
	sort.Strings(names)

	s := make(scope, len(decl))
	for _, name := range names {
		path := "fields." + name
		if name == "" {
			return nil, errorf("fields", "field name must not be empty")
		}

		kind, err := formula.ParseKind(decl[name])
		if err != nil {
			return nil, &CompileError{Path: path, Message: "invalid field kind", Err: err}
		}

		if kind == formula.KindDate && c.parser != nil {
			s[name] = formula.NewDateField(name, formula.WithParser(c.parser))
			continue
		}
		f, err := formula.NewField(kind, name)
		if err != nil {
			return nil, &CompileError{Path: path, Message: "invalid field kind", Err: err}
		}
		s[name] = f
	}
	return s, nil
}

// nodeKind names which node key an expression sets.
type nodeKind string

const (
	nodeAnd      nodeKind = "and"
	nodeOr       nodeKind = "or"
	nodeXor      nodeKind = "xor"
	nodeNot      nodeKind = "not"
	nodeIf       nodeKind = "if"
	nodeRecordID nodeKind = "record_id"
	nodeRaw      nodeKind = "raw"
	nodeField    nodeKind = "field"
)

// classify returns the single node key set on e.
func classify(path string, e Expr) (nodeKind, error) {
	var set []nodeKind
	if e.And != nil {
		set = append(set, nodeAnd)
	}
	if e.Or != nil {
		set = append(set, nodeOr)
	}
	if e.Xor != nil {
		set = append(set, nodeXor)
	}
	if e.Not != nil {
		set = append(set, nodeNot)
	}
	if e.If != nil {
		set = append(set, nodeIf)
	}
	if e.RecordID != nil {
		set = append(set, nodeRecordID)
	}
	if e.Raw != nil {
		set = append(set, nodeRaw)
	}
	if e.Field != "" {
		set = append(set, nodeField)
	}

	switch len(set) {
	case 0:
		return "", errorf(path, "expression is empty: set one of and, or, xor, not, if, record_id, raw, field")
	case 1:
	default:
		return "", errorf(path, "expression sets both %q and %q", set[0], set[1])
	}

	kind := set[0]
	if kind != nodeIf && (e.Then != nil || e.Else != nil) {
		return "", errorf(path, "then/else require if")
	}
	if kind != nodeField && (e.Op != "" || e.Value != nil || e.Values != nil || e.Unit != "" || e.CaseSensitive || e.NoTrim) {
		return "", errorf(path, "op, value, values, unit, case_sensitive and no_trim require field")
	}
	return kind, nil
}

func (c *Compiler) compileExpr(s scope, path string, e Expr) (string, error) {
	kind, err := classify(path, e)
	if err != nil {
		return "", err
	}

	switch kind {
	case nodeAnd:
		return c.compileCall(s, path+".and", e.And, formula.And)
	case nodeOr:
		return c.compileCall(s, path+".or", e.Or, formula.Or)
	case nodeXor:
		return c.compileCall(s, path+".xor", e.Xor, formula.Xor)
	case nodeNot:
		return c.compileCall(s, path+".not", e.Not, formula.Not)
	case nodeIf:
		return c.compileIf(s, path, e)
	case nodeRecordID:
		return formula.IDEquals(*e.RecordID), nil
	case nodeRaw:
		return *e.Raw, nil
	case nodeField:
		return c.compileComparison(s, path, e)
	default:
		return "", errorf(path, "unsupported expression %q", kind)
	}
}

func (c *Compiler) compileCall(s scope, path string, args []Expr, fn func(...string) string) (string, error) {
	parts := make([]string, 0, len(args))
	for i, arg := range args {
		part, err := c.compileExpr(s, fmt.Sprintf("%s[%d]", path, i), arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return fn(parts...), nil
}

func (c *Compiler) compileIf(s scope, path string, e Expr) (string, error) {
	if e.Then == nil {
		return "", errorf(path, "if requires then")
	}
	if e.Else == nil {
		return "", errorf(path, "if requires else")
	}

	cond, err := c.compileExpr(s, path+".if", *e.If)
	if err != nil {
		return "", err
	}
	thenValue, thenOpts, err := c.compileBranch(s, path+".then", *e.Then)
	if err != nil {
		return "", err
	}
	elseValue, elseOpts, err := c.compileBranch(s, path+".else", *e.Else)
	if err != nil {
		return "", err
	}

	return formula.If(cond).Then(thenValue, thenOpts...).Else(elseValue, elseOpts...), nil
}

func (c *Compiler) compileBranch(s scope, path string, b Branch) (string, []formula.ValueOption, error) {
	switch {
	case b.Value != nil && b.Expr != nil:
		return "", nil, errorf(path, "branch sets both value and expr")
	case b.Expr != nil:
		if b.String {
			return "", nil, errorf(path, "string applies to value, not expr")
		}
		v, err := c.compileExpr(s, path+".expr", *b.Expr)
		return v, nil, err
	case b.Value != nil:
		if b.String {
			return *b.Value, []formula.ValueOption{formula.AsString()}, nil
		}
		return *b.Value, nil, nil
	default:
		return "", nil, errorf(path, "branch requires value or expr")
	}
}

func (c *Compiler) compileComparison(s scope, path string, e Expr) (string, error) {
	path = path + "." + e.Field
	field, ok := s[e.Field]
	if !ok {
		return "", errorf(path, "unknown field %q (declare it under fields)", e.Field)
	}
	if e.Op == "" {
		return "", errorf(path, "op is required")
	}

	switch e.Op {
	case "is_empty":
		return field.IsEmpty(), nil
	case "is_not_empty":
		return field.IsNotEmpty(), nil
	}

	switch f := field.(type) {
	case formula.TextField:
		return compileText(path, f, e)
	case formula.TextListField:
		return compileTextList(path, f, e)
	case formula.NumberField:
		return compileNumber(path, f, e)
	case formula.BooleanField:
		return compileBoolean(path, f, e)
	case formula.AttachmentField:
		return compileAttachment(path, f, e)
	case formula.DateField:
		return compileDate(path, f, e)
	default:
		return "", errorf(path, "unsupported field type %T", field)
	}
}

func textOptions(e Expr) []formula.TextOption {
	var opts []formula.TextOption
	if e.CaseSensitive {
		opts = append(opts, formula.CaseSensitive())
	}
	if e.NoTrim {
		opts = append(opts, formula.NoTrim())
	}
	return opts
}

func invalidOp(path string, f formula.Field, op string) error {
	return errorf(path, "operation %q is not valid for %s field %q", op, f.Kind(), f.Name())
}

func compileText(path string, f formula.TextField, e Expr) (string, error) {
	var render func(string, ...formula.TextOption) string
	switch e.Op {
	case "equals", "not_equals", "regex_match":
		if e.CaseSensitive || e.NoTrim {
			return "", errorf(path, "%s is always exact; case_sensitive and no_trim do not apply", e.Op)
		}
	case "contains":
		render = f.Contains
	case "not_contains":
		render = f.NotContains
	case "starts_with":
		render = f.StartsWith
	case "not_starts_with":
		render = f.NotStartsWith
	case "ends_with":
		render = f.EndsWith
	case "not_ends_with":
		render = f.NotEndsWith
	default:
		return "", invalidOp(path, f, e.Op)
	}

	v, err := stringValue(path, e.Value)
	if err != nil {
		return "", err
	}

	switch e.Op {
	case "equals":
		return f.Equals(v), nil
	case "not_equals":
		return f.NotEquals(v), nil
	case "regex_match":
		return f.RegexMatch(v), nil
	default:
		return render(v, textOptions(e)...), nil
	}
}

func compileTextList(path string, f formula.TextListField, e Expr) (string, error) {
	if e.NoTrim {
		return "", errorf(path, "text_list comparisons are never trimmed; no_trim does not apply")
	}

	switch e.Op {
	case "contains", "not_contains":
		v, err := stringValue(path, e.Value)
		if err != nil {
			return "", err
		}
		if e.Op == "contains" {
			return f.Contains(v, textOptions(e)...), nil
		}
		return f.NotContains(v, textOptions(e)...), nil
	case "contains_all", "contains_any":
		if e.Value != nil {
			return "", errorf(path, "%s takes values, not value", e.Op)
		}
		if e.Op == "contains_all" {
			return f.ContainsAll(e.Values, textOptions(e)...), nil
		}
		return f.ContainsAny(e.Values, textOptions(e)...), nil
	default:
		return "", invalidOp(path, f, e.Op)
	}
}

var numberOps = map[string]formula.Operator{
	"equals":                 formula.OpEq,
	"not_equals":             formula.OpNe,
	"greater_than":           formula.OpGt,
	"less_than":              formula.OpLt,
	"greater_than_or_equals": formula.OpGte,
	"less_than_or_equals":    formula.OpLte,
}

func compileNumber(path string, f formula.NumberField, e Expr) (string, error) {
	op, ok := numberOps[e.Op]
	if !ok {
		parsed, err := formula.ParseOperator(e.Op)
		if err != nil {
			return "", invalidOp(path, f, e.Op)
		}
		op = parsed
	}

	v, err := numberValue(path, e.Value)
	if err != nil {
		return "", err
	}
	return f.Compare(op, v), nil
}

func compileBoolean(path string, f formula.BooleanField, e Expr) (string, error) {
	switch e.Op {
	case "is_true":
		return f.IsTrue(), nil
	case "is_false":
		return f.IsFalse(), nil
	case "equals":
		v, err := boolValue(path, e.Value)
		if err != nil {
			return "", err
		}
		return f.Equals(v), nil
	default:
		return "", invalidOp(path, f, e.Op)
	}
}

func compileAttachment(path string, f formula.AttachmentField, e Expr) (string, error) {
	if e.Op != "count_is" {
		return "", invalidOp(path, f, e.Op)
	}
	n, err := intValue(path, e.Value)
	if err != nil {
		return "", err
	}
	return f.CountIs(n), nil
}

var dateOps = map[string]formula.Operator{
	"is_on":           formula.OpEq,
	"is_on_or_after":  formula.OpGte,
	"is_on_or_before": formula.OpLte,
	"is_after":        formula.OpLt,
	"is_before":       formula.OpGt,
	"is_not_on":       formula.OpNe,
}

// compileDate renders the relative terminal when unit is set and the
// absolute terminal otherwise.
func compileDate(path string, f formula.DateField, e Expr) (string, error) {
	op, ok := dateOps[e.Op]
	if !ok {
		return "", invalidOp(path, f, e.Op)
	}
	cmp := f.Compare(op)

	if e.Unit != "" {
		unit, err := formula.ParseUnit(e.Unit)
		if err != nil {
			return "", &CompileError{Path: path, Message: "invalid unit", Err: err}
		}
		n, err := intValue(path, e.Value)
		if err != nil {
			return "", err
		}
		return cmp.Ago(unit, n), nil
	}

	w, err := whenValue(path, e.Value)
	if err != nil {
		return "", err
	}
	text, err := cmp.OnDate(w)
	if err != nil {
		return "", &CompileError{Path: path, Message: "invalid date", Err: err}
	}
	return text, nil
}

func stringValue(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errorf(path, "value must be a string, got %s", describe(v))
	}
	return s, nil
}

// numberValue keeps the integer/float distinction of the decoded value, so
// 0 renders 0 and 0.0 renders 0.0.
func numberValue(path string, v any) (formula.Num, error) {
	switch n := v.(type) {
	case int:
		return formula.Int(int64(n)), nil
	case int64:
		return formula.Int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return formula.Num{}, errorf(path, "value %d is out of range", n)
		}
		return formula.Int(int64(n)), nil
	case float64:
		return formula.Float(n), nil
	default:
		return formula.Num{}, errorf(path, "value must be a number, got %s", describe(v))
	}
}

// intValue accepts whole numbers that fit in an int.
func intValue(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
		return 0, errorf(path, "value %d is out of range", n)
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
		return 0, errorf(path, "value %d is out of range", n)
	case float64:
		if n != math.Trunc(n) {
			break
		}
		// -MinInt is 2^63 (or 2^31), exactly representable unlike MaxInt.
		if n >= math.MinInt && n < -float64(math.MinInt) {
			return int(n), nil
		}
		return 0, errorf(path, "value %g is out of range", n)
	}
	return 0, errorf(path, "value must be an integer, got %s", describe(v))
}

func boolValue(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errorf(path, "value must be a boolean, got %s", describe(v))
	}
	return b, nil
}

// whenValue accepts a phrase for the date parser or a timestamp the
// decoder already resolved.
func whenValue(path string, v any) (formula.When, error) {
	switch d := v.(type) {
	case string:
		return formula.Phrase(d), nil
	case time.Time:
		return formula.At(d), nil
	default:
		return formula.When{}, errorf(path, "value must be a date string, got %s", describe(v))
	}
}

func describe(v any) string {
	if v == nil {
		return "nothing"
	}
	return fmt.Sprintf("%T %v", v, v)
}
