package dashboard

import "strings"

// ConditionRule maps a keyword found in decoded symptoms/diagnosis text to a
// display label. Keyword matching is a stand-in for structured diagnosis
// coding; extend the table to surface more conditions without touching the
// aggregator.
type ConditionRule struct {
	Keyword string
	Label   string
}

var defaultConditionRules = []ConditionRule{
	{Keyword: "diabetes", Label: "Diabetes"},
	{Keyword: "hypertension", Label: "Hypertension"},
}

func matchConditions(rules []ConditionRule, symptomsDiagnosis string) []string {
	if symptomsDiagnosis == "" {
		return nil
	}
	lowered := strings.ToLower(symptomsDiagnosis)

	var labels []string
	for _, rule := range rules {
		if strings.Contains(lowered, rule.Keyword) {
			labels = append(labels, rule.Label)
		}
	}
	return labels
}
