package dataset

import "fmt"

// SchemaError reports a column that was expected in a table but not found.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset: column %q not found", e.Column)
}
