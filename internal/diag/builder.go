package diag

import "rnorm/internal/source"

func New(sev Severity, code Code, primary source.Range, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Range, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(rng source.Range, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Range: rng, Msg: msg})
	return d
}
