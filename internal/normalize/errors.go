package normalize

import (
	"fmt"

	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
)

// StructuralError reports a construct whose leading token committed to a
// shape that the remaining tokens do not follow. It aborts the parse unit.
type StructuralError struct {
	Code     diag.Code
	Expected string       // human-readable expectation
	Tokens   string       // offending raw tokens as compact JSON
	Range    source.Range // where the violation was found
}

func (e *StructuralError) Error() string {
	if e.Tokens == "" {
		return fmt.Sprintf("%s: %s", e.Range, e.Expected)
	}
	return fmt.Sprintf("%s: %s, got %s", e.Range, e.Expected, e.Tokens)
}

// Diagnostic converts the error into an error-severity diagnostic.
func (e *StructuralError) Diagnostic() diag.Diagnostic {
	msg := e.Expected
	if e.Tokens != "" {
		msg += ", got " + e.Tokens
	}
	return diag.NewError(e.Code, e.Range, msg)
}

// structural is the single constructor for every shape violation.
func structural(code diag.Code, rng source.Range, expected string, tokens ...*rawtree.Token) *StructuralError {
	e := &StructuralError{Code: code, Expected: expected, Range: rng}
	if len(tokens) > 0 && tokens[0] != nil {
		e.Tokens = rawtree.Brief(tokens...)
		if rng.IsZero() {
			e.Range = tokens[0].Range
		}
	}
	return e
}
