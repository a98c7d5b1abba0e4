// Package router classifies a natural-language query against the tool
// catalog by asking a language model for a structured routing decision.
package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/zen-systems/bioroute/pkg/adapter"
	"github.com/zen-systems/bioroute/pkg/catalog"
)

// errInvalidJSON is the user-visible error for unparseable model output.
const errInvalidJSON = "Invalid JSON response from LLM"

// Router turns a query plus a tool catalog into a routing decision via a
// single model call. Safe for concurrent use.
type Router struct {
	adapter adapter.Adapter
	model   string
	log     *slog.Logger
}

// New creates a router that classifies with the given adapter and model.
func New(a adapter.Adapter, model string, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{adapter: a, model: model, log: log}
}

// Route builds the classification prompt from the query and catalog, invokes
// the model once, and parses the result. All failures are folded into the
// decision; Route never returns an error.
func (r *Router) Route(ctx context.Context, query string, tools []catalog.Descriptor) Decision {
	if r == nil || r.adapter == nil {
		return Decision{Failure: &Failure{Error: "LLM client not initialized"}}
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	r.log.Info("routing query", "model", r.model, "tools", names)

	systemPrompt := buildSystemPrompt(tools)
	raw, err := r.adapter.Complete(ctx, r.model, systemPrompt, query)
	if err != nil {
		r.log.Error("router model call failed", "error", err)
		return Decision{Failure: &Failure{Error: err.Error()}}
	}

	decision := parseDecision(raw)
	if decision.Failed() {
		r.log.Error("failed to parse routing decision", "raw", raw)
	} else {
		r.log.Info("routed query", "action", decision.Route.Action, "needs_tools", decision.Route.NeedsTools)
	}
	return decision
}

// parseDecision parses raw model output into a decision. Markdown fences are
// tolerated even though the prompt forbids them.
func parseDecision(raw string) Decision {
	content := stripFences(raw)

	var route Route
	if err := json.Unmarshal([]byte(content), &route); err != nil {
		return Decision{Failure: &Failure{
			Error:       errInvalidJSON,
			RawResponse: content,
			ParseError:  err.Error(),
		}}
	}
	return Decision{Route: &route}
}

// stripFences removes surrounding markdown code fences from model output.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
