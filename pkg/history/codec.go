// Package history packs and unpacks the combined disease-history text column.
//
// Historically the schema stored symptoms/diagnosis and allergies in a single
// text field, joined by a fixed delimiter. The codec reproduces that format
// byte for byte so records written before the split keep decoding.
package history

import "strings"

const (
	symptomsPrefix   = "Symptoms & Diagnosis: "
	allergiesDivider = "\n--- Allergies:"
)

// Encode packs symptoms/diagnosis and allergies into the single-column
// disease-history format. The delimiter is not escaped: a symptoms string
// that itself contains the divider will mis-split on Decode. Known
// limitation of the stored format.
func Encode(symptomsDiagnosis, allergies string) string {
	return symptomsPrefix + symptomsDiagnosis + allergiesDivider + " " + allergies
}

// Decode splits a stored disease-history value back into its two logical
// fields. Empty input yields two empty strings. Legacy rows that predate the
// packed format (no divider, no prefix) come back whole in the symptoms
// part with empty allergies.
func Decode(text string) (symptomsDiagnosis, allergies string) {
	if text == "" {
		return "", ""
	}

	parts := strings.SplitN(text, allergiesDivider, 2)
	symptomsDiagnosis = strings.TrimSpace(strings.TrimPrefix(parts[0], symptomsPrefix))
	if len(parts) > 1 {
		allergies = strings.TrimSpace(parts[1])
	}
	return symptomsDiagnosis, allergies
}
