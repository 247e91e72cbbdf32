// Package recipe compiles declarative formula documents.
//
// A recipe declares the fields of a table with their kinds and a list of
// named formulas, each an expression tree. The tree mirrors the builders of
// the formula package one to one, so anything the Go API can build a recipe
// can describe:
//
//	fields:
//	  Lab Code: text
//	  Job Flags: text
//	formulas:
//	  - name: warning
//	    expr:
//	      if:
//	        and:
//	          - {field: Lab Code, op: equals, value: "063"}
//	          - {field: Job Flags, op: contains, value: Map Hard to See, no_trim: true}
//	      then: {value: "Warning: Hard to See - Scout!", string: true}
//	      else: {value: ""}
//
// FORMATS:
//
// The same document can be written as YAML (.yaml, .yml), JSON (.json),
// TOML (.toml) or CUE (.cue). CUE documents are evaluated, exported to JSON
// and decoded like JSON, so CUE definitions and defaults can be used to
// share conditions between formulas. Unknown keys are rejected in YAML,
// JSON and TOML to catch typos.
//
// EXPRESSIONS:
//
// Every expression node sets exactly one of:
//
//	and, or, xor, not   list of expressions
//	if                  condition, with then and else branches
//	record_id           RECORD_ID()='<id>'
//	raw                 a fragment inserted verbatim
//	field               a comparison: op, value/values, case_sensitive,
//	                    no_trim, unit
//
// A branch is either a value (quoted when string is true) or a nested expr.
//
// ERRORS:
//
// Loading reports *LoadError (with a CUE position when available).
// Compilation reports *CompileError naming the path of the offending node;
// a date phrase the parser rejects is wrapped, so formula.IsDateParseError
// still recognizes it.
package recipe
