package particles

import "errors"

// Input errors shared by every loader in the module.
var (
	// ErrMissingInput indicates a data file or companion file is absent.
	ErrMissingInput = errors.New("particles: missing input")

	// ErrAmbiguousInput indicates a companion pattern matched more than one file.
	ErrAmbiguousInput = errors.New("particles: ambiguous input (several files match)")

	// ErrUnrecognizedFormat indicates a tabular companion with an unknown extension.
	ErrUnrecognizedFormat = errors.New("particles: unrecognized tabular format")

	// ErrMalformedData indicates missing fields, length mismatches or non-numeric content.
	ErrMalformedData = errors.New("particles: malformed data")

	// ErrNotEvolving indicates a time-series operation on a single-timestep case.
	ErrNotEvolving = errors.New("particles: case is not time-resolved")
)

// InputError wraps an error with the file it came from.
type InputError struct {
	Path    string
	Wrapped error
}

func (e *InputError) Error() string {
	return e.Path + ": " + e.Wrapped.Error()
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
