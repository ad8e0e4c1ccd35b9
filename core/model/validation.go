package model

// ValidationResult carries hard errors and non-fatal warnings.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(msg string)   { r.Errors = append(r.Errors, msg) }
func (r *ValidationResult) addWarning(msg string) { r.Warnings = append(r.Warnings, msg) }

// AddError records a hard violation and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.addError(msg)
	r.Valid = false
}

// AddWarning records a non-fatal issue.
func (r *ValidationResult) AddWarning(msg string) { r.addWarning(msg) }
