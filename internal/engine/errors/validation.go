package errors

// ConfigValidationError wraps the errors found while validating configuration
// at graph-assembly time. Assembly fails fast; nothing is ever dispatched on a
// graph with invalid wiring or parameters.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return "flowgraph: invalid configuration: " + e.Err.Error()
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError wraps err in a ConfigValidationError. A nil err
// returns nil.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
