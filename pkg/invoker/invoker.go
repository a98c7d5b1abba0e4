// Package invoker executes the tool calls a routing decision asks for,
// producing one record per requested call.
package invoker

import (
	"context"
	"log/slog"

	"github.com/zen-systems/bioroute/pkg/catalog"
	"github.com/zen-systems/bioroute/pkg/router"
)

// Record pairs one tool call's arguments with its outcome. Result holds the
// tool's structured value on success, or a CallError on failure.
type Record struct {
	ToolName string         `json:"tool_name"`
	Args     map[string]any `json:"args"`
	Result   any            `json:"result"`
}

// CallError is the result recorded when a single tool call fails.
type CallError struct {
	Error string `json:"error"`
}

// Invoker walks a decision's required tools in order and calls each one.
// Safe for concurrent use.
type Invoker struct {
	catalog catalog.Client
	log     *slog.Logger
}

// New creates an invoker backed by the given catalog client.
func New(c catalog.Client, log *slog.Logger) *Invoker {
	if log == nil {
		log = slog.Default()
	}
	return &Invoker{catalog: c, log: log}
}

// Invoke produces exactly one record per required tool, in decision order.
// A failed call is recorded and the batch continues. A failure decision, or
// one that needs no tools, yields an empty list; that is not an error.
func (inv *Invoker) Invoke(ctx context.Context, decision router.Decision) []Record {
	records := []Record{}
	if decision.Failed() || decision.Route == nil || !decision.Route.NeedsTools {
		return records
	}

	for _, call := range decision.Route.RequiredTools {
		inv.log.Info("calling tool", "tool", call.Name, "args", call.Args)
		records = append(records, inv.callOne(ctx, call))
	}
	return records
}

func (inv *Invoker) callOne(ctx context.Context, call router.ToolCall) Record {
	record := Record{ToolName: call.Name, Args: call.Args}

	if inv.catalog == nil {
		inv.log.Error("tool catalog client not initialized", "tool", call.Name)
		record.Result = CallError{Error: "tool catalog client not initialized"}
		return record
	}

	result, err := inv.catalog.CallTool(ctx, call.Name, call.Args)
	if err != nil {
		inv.log.Error("tool call failed", "tool", call.Name, "error", err)
		record.Result = CallError{Error: err.Error()}
		return record
	}

	record.Result = result
	return record
}
