package invoker

import (
	"context"
	"fmt"
	"testing"

	"github.com/zen-systems/bioroute/pkg/catalog"
	"github.com/zen-systems/bioroute/pkg/router"
)

// scriptedCatalog fails calls for tools listed in failures and records the
// order of calls it receives.
type scriptedCatalog struct {
	failures map[string]error
	calls    []string
}

func (c *scriptedCatalog) ListTools(context.Context) ([]catalog.Descriptor, error) {
	return nil, nil
}

func (c *scriptedCatalog) CallTool(_ context.Context, name string, args map[string]any) (any, error) {
	c.calls = append(c.calls, name)
	if err, ok := c.failures[name]; ok {
		return nil, err
	}
	return map[string]any{"tool": name, "ok": true}, nil
}

func toolsDecision(calls ...router.ToolCall) router.Decision {
	return router.Decision{Route: &router.Route{
		Action:        "rank",
		NeedsTools:    true,
		RequiredTools: calls,
	}}
}

func TestInvokeFailureDecisionYieldsEmpty(t *testing.T) {
	cat := &scriptedCatalog{}
	inv := New(cat, nil)

	decision := router.Decision{Failure: &router.Failure{Error: "Invalid JSON response from LLM"}}
	records := inv.Invoke(context.Background(), decision)

	if records == nil {
		t.Fatalf("records must be an empty list, not nil")
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if len(cat.calls) != 0 {
		t.Fatalf("no tools should be called, got %v", cat.calls)
	}
}

func TestInvokeNoToolsNeededYieldsEmpty(t *testing.T) {
	cat := &scriptedCatalog{}
	inv := New(cat, nil)

	decision := router.Decision{Route: &router.Route{Action: "explain", NeedsTools: false}}
	if records := inv.Invoke(context.Background(), decision); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestInvokeEmptyRequiredToolsYieldsEmpty(t *testing.T) {
	cat := &scriptedCatalog{}
	inv := New(cat, nil)

	if records := inv.Invoke(context.Background(), toolsDecision()); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestInvokePreservesOrderAndLength(t *testing.T) {
	cat := &scriptedCatalog{}
	inv := New(cat, nil)

	decision := toolsDecision(
		router.ToolCall{Name: "molecular_properties", Args: map[string]any{"smiles": "CCO"}},
		router.ToolCall{Name: "binding_affinity", Args: map[string]any{"smiles": "CCO", "target": "EGFR"}},
		router.ToolCall{Name: "molecular_properties", Args: map[string]any{"smiles": "CCN"}},
	)

	records := inv.Invoke(context.Background(), decision)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []string{"molecular_properties", "binding_affinity", "molecular_properties"}
	for i, name := range want {
		if records[i].ToolName != name {
			t.Fatalf("record %d: expected %s, got %s", i, name, records[i].ToolName)
		}
	}
	if records[1].Args["target"] != "EGFR" {
		t.Fatalf("args not carried into record: %+v", records[1].Args)
	}
}

func TestInvokePartialFailureContinues(t *testing.T) {
	cat := &scriptedCatalog{failures: map[string]error{
		"binding_affinity": fmt.Errorf("tool server error"),
	}}
	inv := New(cat, nil)

	decision := toolsDecision(
		router.ToolCall{Name: "binding_affinity", Args: map[string]any{"smiles": "CCO"}},
		router.ToolCall{Name: "molecular_properties", Args: map[string]any{"smiles": "CCO"}},
	)

	records := inv.Invoke(context.Background(), decision)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	callErr, ok := records[0].Result.(CallError)
	if !ok {
		t.Fatalf("expected CallError result, got %T", records[0].Result)
	}
	if callErr.Error != "tool server error" {
		t.Fatalf("unexpected error: %q", callErr.Error)
	}
	if _, ok := records[1].Result.(map[string]any); !ok {
		t.Fatalf("second call must still succeed, got %T", records[1].Result)
	}
	if len(cat.calls) != 2 {
		t.Fatalf("both tools must be called, got %v", cat.calls)
	}
}

func TestInvokeNilCatalogRecordsErrors(t *testing.T) {
	inv := New(nil, nil)

	decision := toolsDecision(router.ToolCall{Name: "molecular_properties", Args: map[string]any{"smiles": "CCO"}})
	records := inv.Invoke(context.Background(), decision)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	callErr, ok := records[0].Result.(CallError)
	if !ok || callErr.Error == "" {
		t.Fatalf("expected CallError result, got %#v", records[0].Result)
	}
}
