package policy

import "regexp"

// Team represents a named group of users that can be referenced by rules.
type Team struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Members     []string `json:"members" yaml:"members"`
}

// Rule maps a path prefix to a required reviewer set.
// A changed file matches the rule when its path begins with Prefix
// (literal string prefix, not a glob).
type Rule struct {
	Prefix                string   // mapping key from the policy document
	Description           string   `json:"description,omitempty" yaml:"description,omitempty"`
	Users                 []string `json:"users,omitempty" yaml:"users,omitempty"`
	Teams                 []string `json:"teams,omitempty" yaml:"teams,omitempty"`
	RequiredApproverCount int      `json:"requiredApproverCount" yaml:"requiredApproverCount"`
}

// Override waives a failing rule evaluation when all of its present
// clauses are satisfied. An override with no clauses always waives.
type Override struct {
	Description            string   `json:"description,omitempty" yaml:"description,omitempty"`
	OnlyModifiedByUsers    []string `json:"onlyModifiedByUsers,omitempty" yaml:"onlyModifiedByUsers,omitempty"`
	OnlyModifiedFileRegExs []string `json:"onlyModifiedFileRegExs,omitempty" yaml:"onlyModifiedFileRegExs,omitempty"`

	// Patterns holds OnlyModifiedFileRegExs compiled at load time.
	// Index-aligned with OnlyModifiedFileRegExs.
	Patterns []*regexp.Regexp `json:"-" yaml:"-"`
}

// HasUsersClause reports whether the onlyModifiedByUsers clause is present.
func (o Override) HasUsersClause() bool {
	return o.OnlyModifiedByUsers != nil
}

// HasFilesClause reports whether the onlyModifiedFileRegExs clause is present.
func (o Override) HasFilesClause() bool {
	return o.OnlyModifiedFileRegExs != nil
}

// Policy is the root document. Rules preserve the declaration order of
// the reviewers mapping; diagnostics are emitted in that order.
type Policy struct {
	Teams     map[string]Team
	Rules     []Rule
	Overrides []Override
}
