package tools

// MolecularProperties calculates mock physicochemical properties from a
// SMILES string: molecular weight, logP, and hydrogen bond donor/acceptor
// counts in drug-like ranges.
func MolecularProperties() Tool {
	return Tool{
		Name:        "molecular_properties",
		Description: "Calculate essential molecular properties from SMILES strings for drug discovery and chemical analysis.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"smiles": map[string]any{
					"type":        "string",
					"description": "SMILES representation of the molecule",
				},
			},
			"required": []any{"smiles"},
		},
		Run: func(args map[string]any) any {
			smiles := stringArg(args, "smiles", "")
			if msg := ValidateSMILES(smiles); msg != "" {
				return map[string]any{
					"error":  msg,
					"smiles": smiles,
				}
			}

			h := hashKey(smiles)

			molecularWeight := 200 + float64(h%300) // 200-500 g/mol
			logP := -2 + float64(h%1000)/100        // -2 to 8
			hbd := int(h % 8)                       // 0-7 donors
			hba := int(h % 12)                      // 0-11 acceptors

			return map[string]any{
				"smiles":           smiles,
				"molecular_weight": round2(molecularWeight),
				"logP":             round2(logP),
				"hbd":              hbd,
				"hba":              hba,
			}
		},
	}
}
