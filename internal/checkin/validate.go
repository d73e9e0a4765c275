// Package checkin holds the check-in rule editing model: the per-session
// working copy of an event's rules and the validator that reports
// configuration problems in them.
package checkin

import (
	"fmt"

	"github.com/abrezinsky/eventdash/internal/models"
)

// Warning messages that do not depend on a particular rule
const (
	WarnNoActiveRule   = "Deve existir ao menos 1 regra ativa para o check-in funcionar."
	WarnNoRequiredRule = "Nenhuma regra obrigatória está ativa. Recomenda-se ter pelo menos uma regra obrigatória."
)

// Conflict identifies two mandatory rules whose windows never overlap
type Conflict struct {
	RuleAID   string `json:"rule_a_id"`
	RuleBID   string `json:"rule_b_id"`
	RuleAName string `json:"rule_a_name"`
	RuleBName string `json:"rule_b_name"`
	Message   string `json:"message"`
}

// Validation is the report derived from a rule list.
// Warnings and conflicts are advisory; neither blocks a save.
type Validation struct {
	HasActiveRule bool       `json:"has_active_rule"`
	Conflicts     []Conflict `json:"conflicts"`
	Warnings      []string   `json:"warnings"`
}

// HasConflict reports whether the rule takes part in any conflict
func (v Validation) HasConflict(ruleID string) bool {
	for _, c := range v.Conflicts {
		if c.RuleAID == ruleID || c.RuleBID == ruleID {
			return true
		}
	}
	return false
}

// Window is a validity window in minutes relative to the event start
type Window struct {
	Start int
	End   int
}

// WindowOf returns the window [-MinutesBefore, +MinutesAfter] of a rule
func WindowOf(r models.CheckinRule) Window {
	return Window{Start: -r.MinutesBefore, End: r.MinutesAfter}
}

// Overlaps reports whether two windows share some instant.
// Windows that only touch at an endpoint do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

// Validate derives the report for a rule list. It is pure and cheap enough
// to run after every edit. The order of Warnings is stable: active-rule
// checks first, then per-rule numeric checks in list order.
func Validate(rules []models.CheckinRule) Validation {
	var active, requiredActive []models.CheckinRule
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		active = append(active, r)
		if r.Required {
			requiredActive = append(requiredActive, r)
		}
	}

	v := Validation{
		HasActiveRule: len(active) > 0,
		Conflicts:     []Conflict{},
		Warnings:      []string{},
	}

	if !v.HasActiveRule {
		v.Warnings = append(v.Warnings, WarnNoActiveRule)
	} else if len(requiredActive) == 0 {
		v.Warnings = append(v.Warnings, WarnNoRequiredRule)
	}

	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		if r.MinutesBefore < 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				`A regra "%s" possui valor negativo em "Liberar antes". O valor deve ser >= 0.`, r.Name))
		}
		if r.MinutesAfter < 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				`A regra "%s" possui valor negativo em "Encerrar depois". O valor deve ser >= 0.`, r.Name))
		}
		if r.MinutesBefore == 0 && r.MinutesAfter == 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				`A regra "%s" possui janela de validação de 0 minutos. O check-in não terá tempo para ser realizado.`, r.Name))
		}
	}

	// O(n²) over mandatory rules; rule counts stay in the tens
	for i := 0; i < len(requiredActive); i++ {
		for j := i + 1; j < len(requiredActive); j++ {
			a, b := requiredActive[i], requiredActive[j]
			if WindowOf(a).Overlaps(WindowOf(b)) {
				continue
			}
			v.Conflicts = append(v.Conflicts, Conflict{
				RuleAID:   a.ID,
				RuleBID:   b.ID,
				RuleAName: a.Name,
				RuleBName: b.Name,
				Message: fmt.Sprintf(
					`As regras obrigatórias "%s" e "%s" possuem janelas de validação incompatíveis. O participante não conseguirá cumprir ambas simultaneamente.`,
					a.Name, b.Name),
			})
		}
	}

	return v
}
