package catalog

import "fmt"

// ParseError is returned when the catalog payload does not have the product shape.
// Index is the position of the offending record, or -1 when the payload as a
// whole could not be read.
type ParseError struct {
	Index  int
	Field  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0 && e.Err != nil:
		return fmt.Sprintf("parse catalog: %s: %v", e.Reason, e.Err)
	case e.Index < 0:
		return fmt.Sprintf("parse catalog: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("parse catalog: product %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("parse catalog: product %d: %s: %s", e.Index, e.Field, e.Reason)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the catalog endpoint answers with a non-200 status
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}
