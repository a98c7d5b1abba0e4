// Package reasoner synthesizes a final grounded answer from the original
// query, the routing decision, and the collected tool results via a second
// language-model call.
package reasoner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zen-systems/bioroute/pkg/adapter"
	"github.com/zen-systems/bioroute/pkg/invoker"
	"github.com/zen-systems/bioroute/pkg/router"
)

const (
	errInvalidJSON   = "Invalid JSON response from LLM"
	errMissingFields = "Invalid response format: missing 'result' or 'rationale' fields"
)

// Reasoner produces the synthesis-stage result. It may use a different model
// identity than the router. Safe for concurrent use.
type Reasoner struct {
	adapter adapter.Adapter
	model   string
	log     *slog.Logger
}

// New creates a reasoner that synthesizes with the given adapter and model.
func New(a adapter.Adapter, model string, log *slog.Logger) *Reasoner {
	if log == nil {
		log = slog.Default()
	}
	return &Reasoner{adapter: a, model: model, log: log}
}

// Reason invokes the model once with the synthesis prompts and parses the
// output. All failures are folded into the result; Reason never returns an
// error. It is called even when the decision is a failure, in which case the
// failure object itself serves as the decision context.
func (r *Reasoner) Reason(ctx context.Context, query string, decision router.Decision, records []invoker.Record) Result {
	if r == nil || r.adapter == nil {
		return Result{Failure: &Failure{Error: "LLM client not initialized"}}
	}

	r.log.Info("running reasoning analysis", "model", r.model, "tool_results", len(records))

	systemPrompt := buildSystemPrompt()
	userPrompt := buildUserPrompt(query, decision, records)

	raw, err := r.adapter.Complete(ctx, r.model, systemPrompt, userPrompt)
	if err != nil {
		r.log.Error("reasoner model call failed", "error", err)
		return Result{Failure: &Failure{Error: err.Error()}}
	}

	result := parseResult(raw)
	if result.Failed() {
		r.log.Error("failed to parse reasoning result", "error", result.Failure.Error, "raw", raw)
	} else {
		r.log.Info("completed reasoning analysis")
	}
	return result
}

// parseResult parses raw model output, requiring both the result and
// rationale keys to be present.
func parseResult(raw string) Result {
	content := stripFences(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Result{Failure: &Failure{
			Error:       errInvalidJSON,
			RawResponse: content,
			ParseError:  err.Error(),
		}}
	}

	answer, hasResult := parsed["result"]
	rationale, hasRationale := parsed["rationale"]
	if !hasResult || !hasRationale {
		return Result{Failure: &Failure{
			Error:       errMissingFields,
			RawResponse: content,
		}}
	}

	rationaleText, ok := rationale.(string)
	if !ok {
		rationaleText = fmt.Sprintf("%v", rationale)
	}

	return Result{Answer: &Answer{Result: answer, Rationale: rationaleText}}
}

// stripFences removes surrounding markdown code fences from model output.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
