package tools

import "math"

// BindingAffinity predicts mock protein-ligand binding affinity for a
// SMILES ligand against a named protein target.
func BindingAffinity() Tool {
	return Tool{
		Name:        "binding_affinity",
		Description: "Predict protein-ligand binding affinity for drug discovery and target engagement analysis.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"smiles": map[string]any{
					"type":        "string",
					"description": "SMILES representation of the ligand molecule",
				},
				"target": map[string]any{
					"type":        "string",
					"description": "Target protein identifier, e.g. EGFR, VEGFR2, CDK2, BRAF",
					"default":     "EGFR",
				},
			},
			"required": []any{"smiles"},
		},
		Run: func(args map[string]any) any {
			smiles := stringArg(args, "smiles", "")
			target := stringArg(args, "target", "EGFR")
			if msg := ValidateSMILES(smiles); msg != "" {
				return map[string]any{
					"error":  msg,
					"smiles": smiles,
					"target": target,
				}
			}

			h := hashKey(smiles + "|" + target)

			affinity := -3 - float64(h%1200)/100 // -3 to -15 kcal/mol
			pKd := 4.0 + float64(h%500)/100      // 4.0-8.99
			confidence := 0.2 + float64(h%75)/100

			return map[string]any{
				"target":                    target,
				"smiles":                    smiles,
				"binding_affinity_kcal_mol": round2(affinity),
				"pKd":                       round2(pKd),
				"confidence":                round2(math.Min(confidence, 0.99)),
			}
		},
	}
}
