package utils

import "strings"

// InteractionWarning is the outcome of the contraindication check for a
// candidate medicine name.
type InteractionWarning struct {
	Warn   bool   `json:"warn"`
	Reason string `json:"reason"`
}

// Fixed watch-list matched case-insensitively as a substring of the candidate
// name. A single entry today; extend the table, not the calling contract.
var interactionRules = []struct {
	Substance string
	Advisory  string
}{
	{"atorvastatin", "Atorvastatin interactions detected (Grapefruit). Proceed with caution."},
}

// CheckInteractions screens a candidate medicine name against the watch-list.
// A hit must be shown to the user and explicitly overridden before the
// medicine is created.
func CheckInteractions(name string) InteractionWarning {
	lower := strings.ToLower(name)
	for _, r := range interactionRules {
		if strings.Contains(lower, r.Substance) {
			return InteractionWarning{Warn: true, Reason: r.Advisory}
		}
	}
	return InteractionWarning{}
}
