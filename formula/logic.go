package formula

import "strings"

// And renders AND(a,b,...). Fragments are joined as given.
func And(conds ...string) string { return call("AND", conds) }

// Or renders OR(a,b,...).
func Or(conds ...string) string { return call("OR", conds) }

// Xor renders XOR(a,b,...).
func Xor(conds ...string) string { return call("XOR", conds) }

// Not renders NOT(a,...).
func Not(conds ...string) string { return call("NOT", conds) }

// IDEquals holds for the record whose ID is id.
func IDEquals(id string) string {
	return "RECORD_ID()='" + id + "'"
}

func call(fn string, args []string) string {
	return fn + "(" + strings.Join(args, ",") + ")"
}
