package domain

import "strings"

// ValidationError acumula todas las reglas violadas de una operación del
// ledger (no solo la primera) para que el caller pueda mostrarlas completas.
// Warnings son observaciones no fatales: la operación se permite igual.
type ValidationError struct {
	Issues   []string
	Warnings []string
}

// Add registra una regla violada (fatal).
func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

// Warn registra una observación no fatal.
func (e *ValidationError) Warn(warning string) {
	e.Warnings = append(e.Warnings, warning)
}

// HasIssues indica si hay reglas fatales violadas.
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Error implementa error concatenando todas las reglas violadas.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validación sin errores"
	}
	return "validación: " + strings.Join(e.Issues, "; ")
}
