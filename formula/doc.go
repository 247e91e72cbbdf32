// Package formula builds formula expressions for a no-code spreadsheet and
// database platform.
//
// Every builder in this package is an immutable value. Comparison methods
// return plain strings (formula fragments) and the connectives and the
// conditional builder take fragments as input, so fragments nest to any
// depth:
//
//	status := formula.NewTextField("Status")
//	score := formula.NewNumberField("Score")
//
//	f := formula.If(formula.And(
//	    status.Equals("Active"),
//	    score.GreaterThanOrEquals(formula.Int(70)),
//	)).Then("Pass", formula.AsString()).Else("Fail", formula.AsString())
//	// IF(AND({Status}="Active",{Score}>=70), "Pass", "Fail")
//
// FIELDS:
//
// Field is a sealed interface. Only the six variants in this package
// implement it (TextField, TextListField, NumberField, BooleanField,
// AttachmentField, DateField), each exposing the operations that make sense
// for its type. Kind identifies the variant for exhaustive switches:
//
//	switch f.Kind() {
//	case formula.KindText:
//	    ...
//	}
//
// LITERALS:
//
// Field names and string values are interpolated verbatim. A value
// containing a double quote, or a name containing a brace, produces a broken
// formula. Callers that need safe string literals can pass values through
// Escape first.
//
// Numbers are passed as Int or Float, which render apart: Int(0) is 0 and
// Float(0) is 0.0.
//
// DATES:
//
// DateField accessors return a DateComparison which renders either an
// absolute comparison against a parsed instant or a relative "N units ago"
// comparison against NOW(). Free-form phrases are resolved by a DateParser
// supplied with WithParser; the only error this package returns is
// *DateParseError.
package formula
