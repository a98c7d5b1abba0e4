// Package catalog provides access to a remote tool catalog: listing the
// available tools and executing a single named tool call.
package catalog

import (
	"context"
	"errors"
)

// Descriptor describes one tool in the catalog.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      any    `json:"schema"`
}

// Client defines the interface for tool catalog access.
type Client interface {
	// ListTools returns the descriptors of all available tools.
	ListTools(ctx context.Context) ([]Descriptor, error)

	// CallTool executes a single named tool with the given arguments and
	// returns its structured result.
	CallTool(ctx context.Context, name string, args map[string]any) (any, error)
}

// ErrToolNotFound indicates the catalog has no tool with the requested name.
var ErrToolNotFound = errors.New("tool not found")
