// Package change models the proposed change under evaluation: the
// files it touches, who approved it, and who authored its commits.
package change

// ReviewState is the state a reviewer left on a review.
type ReviewState string

const (
	StateApproved         ReviewState = "APPROVED"
	StateChangesRequested ReviewState = "CHANGES_REQUESTED"
	StateCommented        ReviewState = "COMMENTED"
	StateDismissed        ReviewState = "DISMISSED"
)

// Review is a single review event. Lists of reviews are chronological.
type Review struct {
	Author string      `json:"author"`
	State  ReviewState `json:"state"`
}

// Committer is the author identity of one commit in the change. A
// commit whose author cannot be resolved to an identity has
// Resolved == false and an empty Login.
type Committer struct {
	Login    string `json:"login"`
	Resolved bool   `json:"resolved"`
}

// Change is the runtime input to an evaluation. It is constructed once
// per evaluation from a consistent snapshot and never mutated.
type Change struct {
	ModifiedFilePaths []string
	Approvals         []string
	Committers        []Committer
}
