package tools

import (
	"regexp"
	"strings"
)

// smilesPattern allows the common atoms (C, N, O, S, P, F, Cl, Br, I, B,
// Si), digits, and bond/charge/stereochemistry/ring symbols.
var smilesPattern = regexp.MustCompile(`^[CNOSPFBSIcnospfbsilraCH\d()\[\]=#\-+@/\\.]+$`)

// ValidateSMILES checks a SMILES string with a lightweight character-class
// test. It returns an empty string when the input is acceptable, otherwise
// an error description.
func ValidateSMILES(smiles string) string {
	if smiles == "" {
		return "SMILES must be a non-empty string."
	}
	if strings.TrimSpace(smiles) == "" {
		return "SMILES cannot be empty or whitespace only."
	}
	if !smilesPattern.MatchString(smiles) {
		return "SMILES contains invalid characters. Only atoms (C,N,O,S,P,F,Cl,Br,I,B,Si), numbers, and chemical symbols are allowed."
	}
	return ""
}
