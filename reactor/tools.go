package reactor

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/martinemde/reactor/llm"
)

// ToolHandler executes a tool invocation. Arguments have already been
// validated against the tool's declared parameters. The result must be
// JSON-serializable; it is recorded in the transcript as a tool-result
// message.
type ToolHandler func(args map[string]any) (any, error)

// ToolParam declares one accepted keyword argument of a tool.
type ToolParam struct {
	Name        string
	Type        string // JSON Schema type: "string", "integer", "number", "boolean"
	Required    bool
	Description string
}

// ToolDefinition pairs a tool's declared interface with its handler. The
// parameter list fully describes the accepted keyword set: extra or missing
// required arguments are a validation error at execution time.
type ToolDefinition struct {
	Name        string
	Description string
	Params      []ToolParam
	Handler     ToolHandler
}

// Schema returns the tool's parameters as a JSON Schema object suitable for
// a completion request.
func (d ToolDefinition) Schema() map[string]any {
	properties := make(map[string]any, len(d.Params))
	var required []string
	for _, p := range d.Params {
		properties[p.Name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ToolInvocation is a single tool call requested by the reasoning service.
// It is produced by a tool-augmented completion and consumed exactly once by
// the loop controller.
type ToolInvocation struct {
	CallID    string
	Name      string
	Arguments map[string]any
}

// Registry maps tool names to validated definitions. Names are unique; the
// first registration wins and later duplicates are rejected. The registry is
// safe for concurrent use, though the loop drives it sequentially.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]ToolDefinition
	order  []string
	logger *slog.Logger
}

// NewRegistry creates an empty Registry. Tool handler failures are logged to
// logger before propagating; pass nil to discard them.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		tools:  make(map[string]ToolDefinition),
		logger: logger,
	}
}

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.logger = logger
}

// Register adds a tool to the registry. It fails with DuplicateToolError if
// the name is already present; the existing registration is retained.
func (r *Registry) Register(def ToolDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		return &DuplicateToolError{Name: def.Name}
	}
	r.tools[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Get returns the definition for a tool name.
func (r *Registry) Get(name string) (ToolDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Definitions returns tool definitions in registration order, shaped for a
// completion request.
func (r *Registry) Definitions() []llm.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		def := r.tools[name]
		defs = append(defs, llm.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Schema(),
		})
	}
	return defs
}

// validate checks supplied arguments against the declared parameter set.
func (d ToolDefinition) validate(args map[string]any) error {
	declared := make(map[string]bool, len(d.Params))
	var missing []string
	for _, p := range d.Params {
		declared[p.Name] = true
		if p.Required {
			if _, ok := args[p.Name]; !ok {
				missing = append(missing, p.Name)
			}
		}
	}
	var unknown []string
	for key := range args {
		if !declared[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	if len(missing) > 0 || len(unknown) > 0 {
		return &InvalidArgumentsError{Name: d.Name, Missing: missing, Unknown: unknown}
	}
	return nil
}

// Execute looks up a tool by name, validates the supplied arguments against
// its declared parameters, and invokes the handler. Handler errors are logged
// with the action name and arguments, then returned unchanged; propagation is
// the caller's responsibility.
func (r *Registry) Execute(name string, args map[string]any) (any, error) {
	r.mu.RLock()
	def, ok := r.tools[name]
	logger := r.logger
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := def.validate(args); err != nil {
		return nil, err
	}

	result, err := def.Handler(args)
	if err != nil {
		logger.Error("tool execution failed",
			"action", name,
			"arguments", args,
			"error", err,
		)
		return nil, err
	}
	return result, nil
}
