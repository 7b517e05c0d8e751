package kafka

// PermanentError marks a message that can never be processed
// successfully. The consumer commits it instead of retrying.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return "permanent: " + e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the consumer treats it as non-retryable.
func Permanent(err error) error {
	return PermanentError{Err: err}
}
