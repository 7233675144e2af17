package decision

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"revgate/internal/rule"
)

// FormatCLI formats the verdict for terminal output.
func FormatCLI(result Result) string {
	if result.Approved {
		if result.OverrideApplied {
			return fmt.Sprintf("✓ Change approved via override #%d%s\n",
				result.OverrideIndex, describeOverride(result))
		}
		return "✓ Change approved\n"
	}

	var sb strings.Builder
	sb.WriteString(rule.FormatCLI(result.Rules))
	sb.WriteString("No override criteria satisfied\n")
	return sb.String()
}

// FormatCI formats the verdict as GitHub Actions annotations.
func FormatCI(result Result) string {
	if result.Approved {
		if result.OverrideApplied {
			return fmt.Sprintf("::notice::Change approved via override #%d%s\n",
				result.OverrideIndex, describeOverride(result))
		}
		return "::notice::Change approved\n"
	}

	var sb strings.Builder
	sb.WriteString(rule.FormatCI(result.Rules))
	sb.WriteString("::error::No override criteria satisfied\n")
	return sb.String()
}

// FormatJSON formats the full verdict as JSON.
func FormatJSON(result Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteReport writes the verdict as a JSON audit artifact, creating
// parent directories if needed.
func WriteReport(result Result, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func describeOverride(result Result) string {
	if result.OverrideDescription == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", result.OverrideDescription)
}
