package rule

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatCLI formats failing rules for terminal output.
func FormatCLI(result EvalResult) string {
	failures := result.Failures()
	if result.Approved || len(failures) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("❌ Reviewer requirements not met:\n\n")
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("  Rule: %s\n", f.Prefix))
		if f.Description != "" {
			sb.WriteString(fmt.Sprintf("  Description: %s\n", f.Description))
		}
		sb.WriteString(fmt.Sprintf("  Affected files: %s\n", strings.Join(f.AffectedFiles, ", ")))
		sb.WriteString(fmt.Sprintf("  Required approvals: %d\n", f.RequiredCount))
		if len(f.Users) > 0 {
			sb.WriteString(fmt.Sprintf("  Eligible users: %s\n", strings.Join(f.Users, ", ")))
		}
		if len(f.Teams) > 0 {
			sb.WriteString(fmt.Sprintf("  Eligible teams: %s\n", strings.Join(f.Teams, ", ")))
		}
		sb.WriteString(fmt.Sprintf("  Relevant approvals found: %d [%s]\n", len(f.RelevantApprovals), strings.Join(f.RelevantApprovals, ", ")))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Change blocked: %d rule(s) failed\n", len(failures)))
	return sb.String()
}

// FormatCI formats failing rules as GitHub Actions error annotations.
func FormatCI(result EvalResult) string {
	failures := result.Failures()
	if result.Approved || len(failures) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("::error::%s\n", f.Message))
	}
	sb.WriteString(fmt.Sprintf("\n❌ Reviewer requirements not met: %d rule(s) failed\n", len(failures)))
	return sb.String()
}

// FormatJSON formats the full evaluation result as JSON.
func FormatJSON(result EvalResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
