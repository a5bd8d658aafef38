package service

import "fmt"

// LoadError reports that the catalog source could not be fetched or parsed
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MalformedRowError reports a delimited-text row that cannot be mapped to a product.
// Line is 1-based and counts the header.
type MalformedRowError struct {
	Line   int
	Want   int // Expected field count; 0 when the count matched
	Got    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed row at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed row at line %d: expected %d fields, got %d", e.Line, e.Want, e.Got)
}
