// Package override decides whether a failing evaluation is waived by
// one of the policy's override criteria.
package override

import (
	"revgate/internal/change"
	"revgate/internal/policy"
)

// Check reports whether at least one override entry's clauses are all
// satisfied by the change, and the index of the first such entry (-1
// when none is). OR across entries, AND across an entry's clauses.
//
// An absent clause does not constrain the entry, so an entry with no
// clauses always waives. An empty override list never waives.
func Check(overrides []policy.Override, modifiedFilePaths []string, committers []change.Committer) (bool, int) {
	for i, o := range overrides {
		if satisfied(o, modifiedFilePaths, committers) {
			return true, i
		}
	}
	return false, -1
}

// satisfied evaluates both clauses of a single override entry. The
// clauses are independent; both are evaluated even when the first
// already failed (no short-circuit required, and keeping it simple
// keeps the semantics obvious).
func satisfied(o policy.Override, modifiedFilePaths []string, committers []change.Committer) bool {
	usersOK := true
	if o.HasUsersClause() {
		usersOK = onlyModifiedBy(o.OnlyModifiedByUsers, committers)
	}

	filesOK := true
	if o.HasFilesClause() {
		filesOK = onlyModifiedFiles(o, modifiedFilePaths)
	}

	return usersOK && filesOK
}

// onlyModifiedBy holds when every committer is resolved to an identity
// and that identity is in the allowed set. A single commit with no
// resolvable author fails the clause.
func onlyModifiedBy(allowed []string, committers []change.Committer) bool {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, u := range allowed {
		allowedSet[u] = struct{}{}
	}
	for _, c := range committers {
		if !c.Resolved {
			return false
		}
		if _, ok := allowedSet[c.Login]; !ok {
			return false
		}
	}
	return true
}

// onlyModifiedFiles holds when every modified path matches at least
// one of the entry's compiled patterns. Patterns are unanchored unless
// they anchor themselves.
func onlyModifiedFiles(o policy.Override, modifiedFilePaths []string) bool {
	for _, path := range modifiedFilePaths {
		matched := false
		for _, re := range o.Patterns {
			if re.MatchString(path) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
