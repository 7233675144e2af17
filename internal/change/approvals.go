package change

import "sort"

// DeriveApprovals reduces a chronological review list to the set of
// users whose latest significant review state is APPROVED.
//
// Only the most recent non-comment state per reviewer counts: a later
// CHANGES_REQUESTED or DISMISSED clears an earlier APPROVED from the
// same user, and vice versa. COMMENTED never changes a user's recorded
// state. Each user appears at most once in the result, which is sorted
// for deterministic output.
func DeriveApprovals(reviews []Review) []string {
	latest := make(map[string]ReviewState)
	for _, r := range reviews {
		if r.Author == "" || r.State == StateCommented {
			continue
		}
		latest[r.Author] = r.State
	}

	approvals := make([]string, 0, len(latest))
	for user, state := range latest {
		if state == StateApproved {
			approvals = append(approvals, user)
		}
	}
	sort.Strings(approvals)
	return approvals
}
