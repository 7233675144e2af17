// Package rule evaluates reviewer rules against the files a change
// touches and the approvals it has collected.
package rule

import (
	"fmt"
	"strings"

	"revgate/internal/approver"
	"revgate/internal/policy"
)

// Evaluate runs every rule against the change and returns all per-rule
// results in rule declaration order (does not short-circuit).
//
// A rule whose prefix matches no modified file is vacuously satisfied.
// A matched rule passes when at least RequiredApproverCount of the
// supplied approvals belong to the rule's resolved approver set; a
// count of zero passes unconditionally. The only error condition is a
// rule referencing an undefined team, which aborts evaluation with a
// policy.ConfigError rather than producing a verdict from guessed data.
func Evaluate(rules []policy.Rule, teams map[string]policy.Team, modifiedFilePaths, approvals []string) (EvalResult, error) {
	out := EvalResult{Approved: true, Results: make([]Result, 0, len(rules))}

	for _, r := range rules {
		res := Result{
			Prefix:        r.Prefix,
			Description:   r.Description,
			RequiredCount: r.RequiredApproverCount,
			Users:         r.Users,
			Teams:         r.Teams,
			AffectedFiles: affectedFiles(r.Prefix, modifiedFilePaths),
		}

		if len(res.AffectedFiles) == 0 {
			res.Passed = true
			out.Results = append(out.Results, res)
			continue
		}
		res.Matched = true

		possible, err := approver.Resolve(r, teams)
		if err != nil {
			return EvalResult{}, err
		}
		res.RelevantApprovals = relevantApprovals(approvals, possible)

		res.Passed = len(res.RelevantApprovals) >= r.RequiredApproverCount
		if !res.Passed {
			res.Message = failureMessage(res)
			out.Approved = false
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// affectedFiles returns the modified paths that begin with prefix, in
// input order. The match is a literal string prefix: "src/foo" matches
// prefix "src/f".
func affectedFiles(prefix string, modifiedFilePaths []string) []string {
	var affected []string
	for _, path := range modifiedFilePaths {
		if strings.HasPrefix(path, prefix) {
			affected = append(affected, path)
		}
	}
	return affected
}

// relevantApprovals intersects the approvals with the approver set,
// preserving the approvals' order.
func relevantApprovals(approvals []string, possible map[string]struct{}) []string {
	relevant := []string{}
	for _, user := range approvals {
		if _, ok := possible[user]; ok {
			relevant = append(relevant, user)
		}
	}
	return relevant
}

// failureMessage builds the operator-facing explanation for a failed
// rule. Everything in it is reproducible verbatim from the inputs.
func failureMessage(res Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: requires %d approval(s)", res.Prefix, res.RequiredCount)
	if len(res.Users) > 0 {
		fmt.Fprintf(&sb, " from users [%s]", strings.Join(res.Users, ", "))
	}
	if len(res.Teams) > 0 {
		if len(res.Users) > 0 {
			sb.WriteString(" or")
		} else {
			sb.WriteString(" from")
		}
		fmt.Fprintf(&sb, " teams [%s]", strings.Join(res.Teams, ", "))
	}
	fmt.Fprintf(&sb, ", found %d [%s]", len(res.RelevantApprovals), strings.Join(res.RelevantApprovals, ", "))
	fmt.Fprintf(&sb, "; affected files: [%s]", strings.Join(res.AffectedFiles, ", "))
	return sb.String()
}
