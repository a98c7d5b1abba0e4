// Package pipeline sequences the route, invoke, and reason stages and
// assembles the final response payload.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zen-systems/bioroute/pkg/catalog"
	"github.com/zen-systems/bioroute/pkg/invoker"
	"github.com/zen-systems/bioroute/pkg/reasoner"
	"github.com/zen-systems/bioroute/pkg/router"
)

// Response is the assembled outcome of one query.
type Response struct {
	Prompt      string           `json:"prompt"`
	Decision    router.Decision  `json:"decision"`
	ToolResults []invoker.Record `json:"tool_results"`
	Response    reasoner.Result  `json:"response"`
}

// Coordinator runs the three stages in order for each query. All stage-level
// failures are carried inside the response; only a catalog fetch failure is
// returned as an error. Safe for concurrent use.
type Coordinator struct {
	catalog  catalog.Client
	router   *router.Router
	invoker  *invoker.Invoker
	reasoner *reasoner.Reasoner
	log      *slog.Logger
}

// New creates a coordinator over the given catalog client and stages.
func New(c catalog.Client, r *router.Router, inv *invoker.Invoker, rs *reasoner.Reasoner, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{catalog: c, router: r, invoker: inv, reasoner: rs, log: log}
}

// Answer runs catalog fetch, routing, tool invocation, and reasoning for the
// query. The reasoner is invoked even when routing failed, with the failure
// object as its decision context; downstream consumers rely on the response
// always carrying all four fields.
func (co *Coordinator) Answer(ctx context.Context, query string) (*Response, error) {
	tools, err := co.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	decision := co.router.Route(ctx, query, tools)
	records := co.invoker.Invoke(ctx, decision)
	result := co.reasoner.Reason(ctx, query, decision, records)

	co.log.Info("query processing completed", "prompt", query, "failed_route", decision.Failed(), "tool_results", len(records))

	return &Response{
		Prompt:      query,
		Decision:    decision,
		ToolResults: records,
		Response:    result,
	}, nil
}

// fetchCatalog loads the tool catalog. A missing catalog client yields an
// empty catalog; a fetch failure is fatal for the request.
func (co *Coordinator) fetchCatalog(ctx context.Context) ([]catalog.Descriptor, error) {
	if co.catalog == nil {
		co.log.Warn("tool catalog client not configured; routing with empty catalog")
		return nil, nil
	}

	tools, err := co.catalog.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tool catalog: %w", err)
	}
	return tools, nil
}
