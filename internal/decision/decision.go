// Package decision composes rule and override evaluation into the
// final verdict on a change.
package decision

import (
	"revgate/internal/change"
	"revgate/internal/override"
	"revgate/internal/policy"
	"revgate/internal/rule"
)

// Result is the final verdict on a change.
type Result struct {
	Approved bool            `json:"approved"`
	Rules    rule.EvalResult `json:"rules"`

	// OverrideApplied records that the rules failed but an override
	// waived the failure. OverrideIndex is -1 when no override applied.
	OverrideApplied     bool   `json:"overrideApplied"`
	OverrideIndex       int    `json:"overrideIndex"`
	OverrideDescription string `json:"overrideDescription,omitempty"`
}

// Evaluate runs the rules against the change and, when they fail,
// consults the overrides. It is a pure function over (Policy, Change):
// no I/O, no shared state, safe to call concurrently for independent
// evaluations.
//
// Approved == false is a normal outcome; the only error is a policy
// configuration defect surfaced by rule evaluation.
func Evaluate(p policy.Policy, c change.Change) (Result, error) {
	rules, err := rule.Evaluate(p.Rules, p.Teams, c.ModifiedFilePaths, c.Approvals)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Approved:      rules.Approved,
		Rules:         rules,
		OverrideIndex: -1,
	}
	if rules.Approved {
		return result, nil
	}

	waived, idx := override.Check(p.Overrides, c.ModifiedFilePaths, c.Committers)
	if waived {
		result.Approved = true
		result.OverrideApplied = true
		result.OverrideIndex = idx
		result.OverrideDescription = p.Overrides[idx].Description
	}
	return result, nil
}
