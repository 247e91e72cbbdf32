package formula

// ValueOption adjusts how a branch value of a conditional is rendered.
type ValueOption func(*branch)

// AsString quotes the branch value as a string literal.
func AsString() ValueOption {
	return func(b *branch) { b.quoted = true }
}

type branch struct {
	value  string
	quoted bool
}

func newBranch(v string, opts []ValueOption) branch {
	b := branch{value: v}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b branch) render() string {
	if b.quoted {
		return String(b.value)
	}
	return b.value
}

// Pending is a conditional holding its condition, waiting for Then.
type Pending struct {
	cond string
}

// If starts a conditional on cond.
func If(cond string) Pending {
	return Pending{cond: cond}
}

// Then sets the value used when the condition holds.
func (p Pending) Then(v string, opts ...ValueOption) Armed {
	return Armed{cond: p.cond, then: newBranch(v, opts)}
}

// Armed is a conditional with both condition and true value, waiting
// for Else.
type Armed struct {
	cond string
	then branch
}

// Else sets the value used otherwise and renders
// IF(cond, then, else). The result can be passed as the condition or a
// branch value of another conditional.
func (a Armed) Else(v string, opts ...ValueOption) string {
	return "IF(" + a.cond + ", " + a.then.render() + ", " + newBranch(v, opts).render() + ")"
}
