package domain

import "fmt"

// InvalidInputError reports a reading field that is not a usable number
// (NaN or infinite). Callers decide whether to substitute fallback values or
// propagate the failure.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: field %q is not a finite number (%v)", e.Field, e.Value)
}

// ComputationError reports a scorer producing NaN or an infinity from finite
// inputs. This indicates a logic defect in the engine, not a data problem.
type ComputationError struct {
	Hazard string
	Value  float64
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error: %s probability is not finite (%v)", e.Hazard, e.Value)
}
