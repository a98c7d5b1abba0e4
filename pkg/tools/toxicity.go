package tools

// ToxicityPrediction produces a mock ADMET profile (absorption,
// distribution, metabolism, excretion, toxicity) for a SMILES string.
func ToxicityPrediction() Tool {
	return Tool{
		Name:        "toxicity_prediction",
		Description: "Predict comprehensive ADMET (Absorption, Distribution, Metabolism, Excretion, Toxicity) properties for drug safety assessment.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"smiles": map[string]any{
					"type":        "string",
					"description": "SMILES representation of the molecule to analyze",
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

			absorption := 0.3 + float64(h%70)/100      // 0.3-1.0
			volumeDist := 0.5 + float64(h%500)/100     // 0.5-5.5 L/kg
			halfLife := 1 + float64(h%2400)/100        // 1-25 hours
			clearance := 5 + float64(h%500)/10         // 5-55 mL/min/kg
			ld50 := 100 + int(h%1900)                  // 100-2000 mg/kg
			toxicityLevel := []string{"Low", "Moderate", "High"}[h%3]

			absorptionClass := "Low"
			if absorption > 0.7 {
				absorptionClass = "High"
			} else if absorption > 0.5 {
				absorptionClass = "Moderate"
			}

			stability := "Unstable"
			if halfLife > 10 {
				stability = "Stable"
			} else if halfLife > 5 {
				stability = "Moderate"
			}

			bbb := "No"
			if h%2 == 0 {
				bbb = "Yes"
			}

			return map[string]any{
				"smiles": smiles,
				"absorption": map[string]any{
					"human_intestinal_absorption": round2(absorption),
					"caco2_permeability":          round2(float64(h%100) / 10),
					"classification":              absorptionClass,
				},
				"distribution": map[string]any{
					"volume_of_distribution": round2(volumeDist),
					"plasma_protein_binding": round1(70 + float64(h%30)),
					"bbb_penetration":        bbb,
				},
				"metabolism": map[string]any{
					"half_life_hours":     round1(halfLife),
					"cyp450_substrate":    []string{"CYP3A4", "CYP2D6"}[h%2],
					"metabolic_stability": stability,
				},
				"excretion": map[string]any{
					"clearance_ml_min_kg":     round1(clearance),
					"renal_excretion_percent": round1(20 + float64(h%60)),
				},
				"toxicity": map[string]any{
					"overall_toxicity": toxicityLevel,
					"ld50_mg_kg":       ld50,
					"hepatotoxicity":   positiveIf(h%3 == 0),
					"cardiotoxicity":   positiveIf(h%5 == 0),
					"mutagenicity":     positiveIf(h%7 == 0),
				},
			}
		},
	}
}

func positiveIf(cond bool) string {
	if cond {
		return "Positive"
	}
	return "Negative"
}
