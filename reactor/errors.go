package reactor

import (
	"fmt"
	"strings"
)

// DuplicateToolError is returned when registering a tool whose name is
// already present in the registry. The registry keeps the first registration.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// UnknownToolError is returned when executing a tool name the registry does
// not hold.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// InvalidArgumentsError is returned when the supplied arguments do not match
// a tool's declared parameters. The handler is never invoked.
type InvalidArgumentsError struct {
	Name    string
	Missing []string // required parameters that were not supplied
	Unknown []string // supplied keys not declared by the tool
}

func (e *InvalidArgumentsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unrecognized: "+strings.Join(e.Unknown, ", "))
	}
	return fmt.Sprintf("invalid arguments for tool %q (%s)", e.Name, strings.Join(parts, "; "))
}

// NoActionProducedError is returned when the reasoning service produced no
// tool call during ACTING, even after one silent re-prompt.
type NoActionProducedError struct {
	Iteration int
}

func (e *NoActionProducedError) Error() string {
	return fmt.Sprintf("no action produced at iteration %d after re-prompt", e.Iteration)
}

// MaxIterationsExceededError is returned when the loop exhausts its iteration
// budget without the terminal tool being invoked. The partial transcript is
// returned alongside the error by RunLoop.
type MaxIterationsExceededError struct {
	MaxIterations int
}

func (e *MaxIterationsExceededError) Error() string {
	return fmt.Sprintf("max iterations (%d) exceeded without a final answer", e.MaxIterations)
}
