package parser

import "fmt"

// Extraction failure reasons. These are terminal, user-visible failures:
// the caller maps them to a 4xx response and never retries.
const (
	ReasonCorrupt   = "corrupt"
	ReasonEncrypted = "encrypted"
	ReasonNoText    = "no_text"
)

// ExtractionError reports that the input could not be turned into text.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Message returns a human-readable explanation for the end user.
func (e *ExtractionError) Message() string {
	switch e.Reason {
	case ReasonEncrypted:
		return "This file is password-protected. Remove the password and try again."
	case ReasonNoText:
		return "No readable text found. Scanned or image-only documents are not supported."
	default:
		return "The file could not be read. It may be corrupt or not a valid document."
	}
}
