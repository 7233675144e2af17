package policy

import "fmt"

// ConfigError reports a defect in the policy document itself: a schema
// violation, a rule referencing an undefined team, or an override
// pattern that does not compile. Evaluation must not proceed on a
// policy that produced one; a partial or guessed reading of the policy
// would silently weaken a security control.
type ConfigError struct {
	Subject string // offending rule prefix, team name, or pattern
	Detail  string
}

func (e *ConfigError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("invalid policy: %s", e.Detail)
	}
	return fmt.Sprintf("invalid policy: %s: %s", e.Subject, e.Detail)
}
