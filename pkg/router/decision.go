package router

import (
	"encoding/json"
	"fmt"
)

// ToolCall names one required tool invocation with its arguments.
type ToolCall struct {
	Name string         `json:"tool_name"`
	Args map[string]any `json:"args"`
}

// UnmarshalJSON accepts the canonical {"tool_name": ..., "args": {...}}
// shape, falling back to the legacy single-key form {"<name>": {...}} that
// earlier routing prompts produced.
func (t *ToolCall) UnmarshalJSON(data []byte) error {
	var canonical struct {
		Name string         `json:"tool_name"`
		Args map[string]any `json:"args"`
	}
	if err := json.Unmarshal(data, &canonical); err == nil && canonical.Name != "" {
		t.Name = canonical.Name
		t.Args = canonical.Args
		return nil
	}

	var legacy map[string]map[string]any
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	if len(legacy) != 1 {
		return fmt.Errorf("tool call must be {\"tool_name\": ..., \"args\": ...} or a single-key object, got %d keys", len(legacy))
	}
	for name, args := range legacy {
		t.Name = name
		t.Args = args
	}
	return nil
}

// Route captures a successfully parsed routing decision.
type Route struct {
	Action        string         `json:"action,omitempty"`
	NeedsTools    bool           `json:"needs_tools"`
	RequiredTools []ToolCall     `json:"required_tools,omitempty"`
	Entities      map[string]any `json:"entities,omitempty"`
	Confidence    float64        `json:"confidence"`
}

// Failure captures a routing failure: the model call failed outright or its
// output could not be parsed. RawResponse and ParseError are only set when
// there was model output to diagnose.
type Failure struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`
}

// Decision is the outcome of one routing call. Exactly one of Route or
// Failure is set.
type Decision struct {
	Route   *Route
	Failure *Failure
}

// Failed reports whether the decision is a failure.
func (d Decision) Failed() bool {
	return d.Failure != nil
}

// MarshalJSON emits the wire shape of whichever variant is set.
func (d Decision) MarshalJSON() ([]byte, error) {
	if d.Failure != nil {
		return json.Marshal(d.Failure)
	}
	if d.Route != nil {
		return json.Marshal(d.Route)
	}
	return []byte("null"), nil
}
