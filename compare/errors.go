package compare

import "fmt"

// All comparator errors are terminal for the comparison call that produced
// them. The comparator never retries; idempotent re-invocation with the same
// inputs is the caller's recovery mechanism.

// DecodeError indicates the source audio could not be read or decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EmptySignalError indicates a decoded signal carried zero samples
type EmptySignalError struct {
	Side string // "teacher" or "student"
}

func (e *EmptySignalError) Error() string {
	return fmt.Sprintf("%s signal is empty", e.Side)
}

// EmptyFeatureError indicates feature extraction yielded zero frames
type EmptyFeatureError struct {
	Side string
}

func (e *EmptyFeatureError) Error() string {
	return fmt.Sprintf("%s signal produced no feature frames", e.Side)
}

// NumericIntegrityError indicates a NaN or Inf slipped past the epsilon
// floors into a chroma or cost matrix. The floors in the extractor and the
// cost metric should make this unreachable; the check exists so a numeric
// fault surfaces as a tagged failure instead of a silently corrupted score.
type NumericIntegrityError struct {
	Stage string // "chroma" or "cost_matrix"
}

func (e *NumericIntegrityError) Error() string {
	return fmt.Sprintf("non-finite value detected in %s", e.Stage)
}
