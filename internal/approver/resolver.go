// Package approver resolves a rule's named users and teams into a flat
// approver set.
package approver

import (
	"fmt"

	"revgate/internal/policy"
)

// Resolve expands a rule into the union of its named users and the
// members of every team it references, using the policy's team roster.
//
// A team name that does not resolve is a policy defect and fails fast;
// silently treating it as empty would weaken the control the rule
// encodes. Duplicate names across users and overlapping teams collapse
// (the result is a set).
func Resolve(rule policy.Rule, teams map[string]policy.Team) (map[string]struct{}, error) {
	approvers := make(map[string]struct{}, len(rule.Users))
	for _, u := range rule.Users {
		approvers[u] = struct{}{}
	}
	for _, name := range rule.Teams {
		team, ok := teams[name]
		if !ok {
			return nil, &policy.ConfigError{
				Subject: rule.Prefix,
				Detail:  fmt.Sprintf("references undefined team %q", name),
			}
		}
		for _, member := range team.Members {
			approvers[member] = struct{}{}
		}
	}
	return approvers, nil
}
