package rule

// Result is the outcome of evaluating a single rule against a change.
type Result struct {
	Prefix        string   `json:"prefix"`
	Description   string   `json:"description,omitempty"`
	Matched       bool     `json:"matched"`       // some modified file begins with Prefix
	Passed        bool     `json:"passed"`        // vacuously true when not matched
	AffectedFiles []string `json:"affectedFiles"` // modified files beginning with Prefix
	RequiredCount int      `json:"requiredCount"`
	Users         []string `json:"users,omitempty"`
	Teams         []string `json:"teams,omitempty"`

	// RelevantApprovals are the approvals that belong to the rule's
	// resolved approver set, in the order the approvals were supplied.
	RelevantApprovals []string `json:"relevantApprovals"`

	// Message explains a failure in operator terms. Empty when Passed.
	Message string `json:"message,omitempty"`
}

// EvalResult aggregates per-rule results. Approved is the AND over
// every rule that matched at least one modified file; rules that
// matched nothing never gate approval.
type EvalResult struct {
	Approved bool     `json:"approved"`
	Results  []Result `json:"results"`
}

// Failures returns the results of matched rules that did not pass.
func (r EvalResult) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Matched && !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}
