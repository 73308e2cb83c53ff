package ranking

import "fmt"

// MissingColumnError is returned when the dataset lacks a required scenario
// column. No partial ranking is produced.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// TypeConversionError is returned when a cost column contains a non-empty
// cell that cannot be summed.
type TypeConversionError struct {
	Column string
	Row    int
	Value  interface{}
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("column %s row %d: cannot convert %v (%T) to a cost value", e.Column, e.Row, e.Value, e.Value)
}
