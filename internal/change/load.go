package change

import (
	"encoding/json"
	"fmt"
	"os"
)

// commitEntry is the collaborator's hand-off format for one commit.
// An empty login means the commit's author could not be resolved to an
// identity.
type commitEntry struct {
	Login string `json:"login"`
}

// LoadModifiedFiles reads a JSON array of repository-relative paths.
func LoadModifiedFiles(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var files []string
	if err := json.Unmarshal(content, &files); err != nil {
		return nil, fmt.Errorf("invalid file list: %w", err)
	}
	return files, nil
}

// LoadReviews reads a chronological JSON array of review events. An
// unrecognized state is rejected rather than guessed at; a misread
// review list could flip a verdict.
func LoadReviews(path string) ([]Review, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reviews []Review
	if err := json.Unmarshal(content, &reviews); err != nil {
		return nil, fmt.Errorf("invalid review list: %w", err)
	}
	for i, r := range reviews {
		switch r.State {
		case StateApproved, StateChangesRequested, StateCommented, StateDismissed:
		default:
			return nil, fmt.Errorf("invalid review list: entry %d has unknown state %q", i, r.State)
		}
	}
	return reviews, nil
}

// LoadCommitters reads a JSON array of commit author entries, one per
// commit in the change.
func LoadCommitters(path string) ([]Committer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []commitEntry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("invalid commit list: %w", err)
	}
	committers := make([]Committer, 0, len(entries))
	for _, e := range entries {
		committers = append(committers, Committer{
			Login:    e.Login,
			Resolved: e.Login != "",
		})
	}
	return committers, nil
}
