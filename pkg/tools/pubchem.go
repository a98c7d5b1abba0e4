package tools

import (
	"fmt"
	"strings"
)

// PubChemLookup simulates searching the PubChem database for compounds,
// assays, or bioactivity data.
func PubChemLookup() Tool {
	return Tool{
		Name:        "pubchem_lookup",
		Description: "Search PubChem database for chemical compounds, biological assays, and bioactivity data.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query: compound name, CID, SMILES, target protein, or keyword",
				},
				"search_type": map[string]any{
					"type":        "string",
					"description": "Type of search to perform",
					"enum":        []any{"compound", "assay", "bioactivity"},
					"default":     "compound",
				},
			},
			"required": []any{"query"},
		},
		Run: func(args map[string]any) any {
			query := stringArg(args, "query", "")
			searchType := stringArg(args, "search_type", "compound")

			switch searchType {
			case "compound", "assay", "bioactivity":
			default:
				return map[string]any{
					"error":       fmt.Sprintf("Invalid search_type %q. Must be one of: compound, assay, bioactivity", searchType),
					"query":       query,
					"search_type": searchType,
				}
			}

			h := hashKey(query + "|" + searchType)
			numResults := 1 + int(h%5)

			switch searchType {
			case "compound":
				return compoundResults(query, h, numResults)
			case "assay":
				return assayResults(query, h, numResults)
			default:
				return bioactivityResults(query, h, numResults)
			}
		},
	}
}

func compoundResults(query string, h uint64, n int) map[string]any {
	results := make([]any, 0, n)
	for i := uint64(0); i < uint64(n); i++ {
		cid := 1000 + (h+i*37)%90000
		smiles := "C" + strings.Repeat("C", int((h+i)%6)) + "O"
		mw := 200 + float64((h+i*23)%300)

		results = append(results, map[string]any{
			"cid": cid,
			"names": []any{
				fmt.Sprintf("Compound_%d", cid),
				fmt.Sprintf("MC-%d", cid),
				fmt.Sprintf("Test-Compound-%d", cid%1000),
			},
			"smiles":            smiles,
			"molecular_formula": fmt.Sprintf("C%dH%dO", (h+i)%6+1, ((h+i)%6)*2+2),
			"molecular_weight":  round2(mw),
			"iupac_name":        fmt.Sprintf("MJ-%d-ol", (h+i)%6+1),
		})
	}

	return map[string]any{
		"query":       query,
		"search_type": "compound",
		"count":       len(results),
		"results":     results,
	}
}

func assayResults(query string, h uint64, n int) map[string]any {
	targets := []string{"EGFR", "VEGFR2", "CDK2", "p53", "BRAF", "ALK", "HER2", "PI3K"}
	assayTypes := []string{"binding", "enzymatic", "cell-based", "functional"}

	results := make([]any, 0, n)
	for i := uint64(0); i < uint64(n); i++ {
		aid := 1000000 + (h+i*47)%900000
		target := targets[(h+i)%uint64(len(targets))]
		assayType := assayTypes[(h+i)%uint64(len(assayTypes))]

		organism := "Rattus norvegicus"
		if (h+i)%2 == 0 {
			organism = "Homo sapiens"
		}

		results = append(results, map[string]any{
			"aid":              aid,
			"title":            fmt.Sprintf("%s %s assay", target, assayType),
			"description":      fmt.Sprintf("%s assay measuring activity against %s", assayType, target),
			"target":           target,
			"assay_type":       assayType,
			"organism":         organism,
			"active_compounds": 50 + (h+i*31)%200,
			"total_compounds":  500 + (h+i*41)%1500,
		})
	}

	return map[string]any{
		"query":       query,
		"search_type": "assay",
		"count":       len(results),
		"results":     results,
	}
}

func bioactivityResults(query string, h uint64, n int) map[string]any {
	activityTypes := []string{"IC50", "EC50", "Ki", "Kd", "ED50"}
	units := []string{"nM", "μM", "pM"}
	targets := []string{"EGFR", "VEGFR2", "CDK2", "p53"}

	results := make([]any, 0, n)
	activeCount := 0
	confidenceSum := 0.0

	for i := uint64(0); i < uint64(n); i++ {
		cid := 1000 + (h+i*37)%90000
		aid := 1000000 + (h+i*47)%900000
		unit := units[(h+i)%uint64(len(units))]

		var value float64
		switch unit {
		case "nM":
			value = float64(1 + (h+i*13)%999) // 1-1000 nM
		case "μM":
			value = round1(0.1 + float64((h+i*17)%99)/10) // 0.1-10 μM
		default:
			value = float64(10 + (h+i*19)%990) // 10-1000 pM
		}

		outcome := "Inactive"
		if value < 1000 {
			outcome = "Active"
			activeCount++
		}

		confidence := round2(0.6 + float64((h+i*7)%40)/100)
		confidenceSum += confidence

		results = append(results, map[string]any{
			"cid":              cid,
			"aid":              aid,
			"compound_name":    fmt.Sprintf("Compound_%d", cid),
			"target":           targets[(h+i)%uint64(len(targets))],
			"activity_type":    activityTypes[(h+i)%uint64(len(activityTypes))],
			"activity_value":   value,
			"activity_unit":    unit,
			"activity_outcome": outcome,
			"confidence_score": confidence,
		})
	}

	uniqueTargets := map[string]struct{}{}
	for _, r := range results {
		uniqueTargets[r.(map[string]any)["target"].(string)] = struct{}{}
	}

	return map[string]any{
		"query":       query,
		"search_type": "bioactivity",
		"count":       len(results),
		"results":     results,
		"summary": map[string]any{
			"active_compounds":   activeCount,
			"inactive_compounds": len(results) - activeCount,
			"average_confidence": round2(confidenceSum / float64(len(results))),
			"unique_targets":     len(uniqueTargets),
		},
	}
}
