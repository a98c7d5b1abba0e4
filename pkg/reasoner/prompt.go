package reasoner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zen-systems/bioroute/pkg/invoker"
	"github.com/zen-systems/bioroute/pkg/router"
)

// buildSystemPrompt renders the synthesis prompt: the analytical task and
// the required two-field output shape, with worked examples for ranking,
// selection, and explanation answers.
func buildSystemPrompt() string {
	return `You are an analytical reasoning agent for biological and chemical analysis.

Your task is to analyze the results from various tools and make informed decisions based on:
1. The original user prompt/query
2. The decision context or question to be answered
3. The tool results and data available

You should provide comprehensive analysis that includes:
- Clear conclusions based on the evidence
- Scientific reasoning for your decisions
- Consideration of uncertainties or limitations in the data
- Actionable insights when appropriate

You must respond with a valid JSON object containing:
- "result": the main conclusion, decision, or answer (can be string, number, array, or object depending on the context)
- "rationale": brief explanation of your key reasoning and main evidence (1-2 sentences max)

Example response format:
{
    "result": "Compound A shows superior binding affinity to EGFR with a predicted IC50 of 0.23 μM compared to Compound B (IC50: 1.45 μM)",
    "rationale": "Compound A has 6x better binding affinity (-8.5 vs -6.2 kcal/mol) and meets drug-likeness criteria with low toxicity."
}

For ranking tasks, the result might be an ordered list:
{
    "result": [
        {"compound": "Compound A", "score": 8.5, "reason": "High binding affinity, optimal ADMET"},
        {"compound": "Compound C", "score": 7.2, "reason": "Good selectivity, moderate toxicity"},
        {"compound": "Compound B", "score": 5.1, "reason": "Weak binding, poor pharmacokinetics"}
    ],
    "rationale": "Ranked by weighted scores: binding affinity (40%), ADMET (35%), selectivity (15%), and synthetic accessibility (10%)."
}

For selection tasks, provide clear yes/no decisions with supporting data:
{
    "result": {
        "selected": ["Compound A", "Compound D"],
        "rejected": ["Compound B", "Compound C"],
        "criteria_met": {"binding_threshold": "< 1 μM", "toxicity": "Low risk", "druglikeness": "Lipinski compliant"}
    },
    "rationale": "A and D meet all criteria (IC50 < 1 μM, low toxicity, drug-like). B and C fail binding threshold."
}

Keep rationales concise and focused on key evidence. Base decisions on scientific data but avoid lengthy explanations.`
}

// buildUserPrompt embeds the original query, the routing decision context,
// and a per-record rendering of every tool result.
func buildUserPrompt(query string, decision router.Decision, records []invoker.Record) string {
	var toolsSummary strings.Builder
	for _, record := range records {
		fmt.Fprintf(&toolsSummary, "Tool: %s\nResult: %s\n---\n", record.ToolName, renderValue(record.Result))
	}

	return fmt.Sprintf(`CONTEXT:

Original User Query:
%s

Decision/Question to Answer:
%s

Available Tool Results:
%s

Please analyze the above information and provide your reasoning and conclusion.`, query, renderValue(decision), toolsSummary.String())
}

// renderValue renders a JSON-like value as compact JSON, falling back to
// fmt formatting for values that do not marshal.
func renderValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
