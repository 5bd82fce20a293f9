package encoder

import "fmt"

// EncodingError wraps an encode-time failure with the mnemonic that
// produced it, so callers higher up the pipeline (which know the source
// position) can add file/line context without losing the original cause.
type EncodingError struct {
	Mnemonic string
	Wrapped  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Mnemonic, e.Wrapped)
}

func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}
