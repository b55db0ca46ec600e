package params

import "fmt"

// MalformedParameterError reports a parameter value that cannot be coerced
// to its expected type. Out-of-range values are never an error (they are
// clamped); only shape mismatches like a non-numeric temperature get here.
type MalformedParameterError struct {
	Key   string
	Value any
}

func (e *MalformedParameterError) Error() string {
	return fmt.Sprintf("malformed parameter %q: cannot coerce %v (%T)", e.Key, e.Value, e.Value)
}
