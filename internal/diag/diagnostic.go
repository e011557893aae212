package diag

import (
	"rnorm/internal/source"
)

type Note struct {
	Range source.Range
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Range
	Notes    []Note
}
