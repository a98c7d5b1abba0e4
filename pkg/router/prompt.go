package router

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zen-systems/bioroute/pkg/catalog"
)

// Action describes one supported routing action.
type Action struct {
	Name        string
	Description string
}

// SupportedActions returns the fixed set of actions the router may choose
// from, in prompt order.
func SupportedActions() []Action {
	return []Action{
		{Name: "rank", Description: "Rank and order biological entities, proteins, genes, or research papers based on relevance, importance, or specific criteria"},
		{Name: "select", Description: "Select and filter specific biological entities, datasets, or information based on given parameters or conditions"},
		{Name: "explain", Description: "Provide detailed explanations about biological concepts, processes, research findings, or entity relationships"},
	}
}

// buildSystemPrompt renders the classification prompt: the supported actions,
// the tool catalog, and the required JSON output shape.
func buildSystemPrompt(tools []catalog.Descriptor) string {
	var actions strings.Builder
	for _, a := range SupportedActions() {
		fmt.Fprintf(&actions, "- %s: %s\n", a.Name, a.Description)
	}

	var toolsInfo strings.Builder
	for _, t := range tools {
		schema, err := json.Marshal(t.Schema)
		if err != nil || t.Schema == nil {
			schema = []byte("{}")
		}
		fmt.Fprintf(&toolsInfo, "- %s: %s\n  Schema: %s\n", t.Name, t.Description, schema)
	}

	return fmt.Sprintf(`You are a query understanding agent for biological and chemical analysis.

Your task is to analyze user queries and determine:
1. What action they want to perform (rank, select, explain, etc.)
2. Whether tools are needed
3. Which specific tools are required with their arguments
4. Extract relevant entities from the query

Available actions:
%s
Available tools:
%s
You must respond with a valid JSON object containing:
- "action": the main action to perform
- "needs_tools": boolean indicating if tools are required
- "required_tools": array of tool call objects, each with exactly two fields: "tool_name" (string) and "args" (object matching the schema for that specific tool). Empty if needs_tools is false.
- "entities": object containing extracted entities (compounds, targets, etc.)
- "confidence": float between 0 and 1 indicating your confidence

Example response:
{
    "action": "rank",
    "needs_tools": true,
    "required_tools": [
        {"tool_name": "molecular_properties", "args": {"smiles": "CC(C)Cc1ccc(cc1)C(C)C(O)=O"}},
        {"tool_name": "binding_affinity", "args": {"smiles": "CC(C)Cc1ccc(cc1)C(C)C(O)=O", "target": "EGFR"}},
        {"tool_name": "molecular_properties", "args": {"smiles": "CN1C=NC2=C1C(=O)N(C(=O)N2C)C"}},
        {"tool_name": "binding_affinity", "args": {"smiles": "CN1C=NC2=C1C(=O)N(C(=O)N2C)C", "target": "EGFR"}}
    ],
    "entities": {
        "compounds": [
            {"name": "Compound A", "smiles": "CC(C)Cc1ccc(cc1)C(C)C(O)=O"},
            {"name": "Compound B", "smiles": "CN1C=NC2=C1C(=O)N(C(=O)N2C)C"}
        ],
        "target": "EGFR"
    },
    "confidence": 0.95
}

Another example for compound comparison:
{
    "action": "explain",
    "needs_tools": true,
    "required_tools": [
        {"tool_name": "binding_affinity", "args": {"smiles": "CC(C)NCC(COc1ccccc1)O", "target": "beta2_adrenergic"}},
        {"tool_name": "molecular_properties", "args": {"smiles": "CC(C)NCC(COc1ccccc1)O"}},
        {"tool_name": "toxicity_prediction", "args": {"smiles": "CC(C)NCC(COc1ccccc1)O"}}
    ],
    "entities": {
        "compounds": [
            {"name": "Propranolol", "smiles": "CC(C)NCC(COc1ccccc1)O"}
        ],
        "target": "beta2_adrenergic"
    },
    "confidence": 0.92
}

NEVER format required_tools entries as index-keyed objects like {"0": "binding_affinity", "1": {...}} and never as a single-key object mapping the tool name to its arguments. Always use the explicit "tool_name" and "args" fields.

Respond with ONLY the JSON object, no markdown fences and no surrounding text.`, actions.String(), toolsInfo.String())
}
