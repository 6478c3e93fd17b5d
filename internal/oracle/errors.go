package oracle

import "fmt"

// TimeoutError reports an exhausted retry budget. The orchestrator treats it
// differently from generic transport failures: at the BASE state it aborts
// the whole (class, size) pair.
type TimeoutError struct {
	Attempts int
	Last     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("oracle query timed out after %d attempts: %v", e.Attempts, e.Last)
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}

// SchemaError reports raw oracle output that could not be coerced into the
// four-family extension shape. It is reported as a violation, never raised
// past the orchestrator.
type SchemaError struct {
	Reason string
	Raw    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("oracle response schema violation: %s", e.Reason)
}
