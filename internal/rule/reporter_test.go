package rule

import (
	"encoding/json"
	"strings"
	"testing"
)

func failingResult() EvalResult {
	return EvalResult{
		Approved: false,
		Results: []Result{
			{
				Prefix:            "src/",
				Matched:           true,
				Passed:            false,
				AffectedFiles:     []string{"src/a.ts"},
				RequiredCount:     2,
				Users:             []string{"alice", "bob"},
				Teams:             []string{"core"},
				RelevantApprovals: []string{"bob"},
				Message:           "src/: requires 2 approval(s) from users [alice, bob] or teams [core], found 1 [bob]; affected files: [src/a.ts]",
			},
			{Prefix: "docs/", Matched: false, Passed: true},
		},
	}
}

func TestFormatCLI_FailingRules(t *testing.T) {
	output := FormatCLI(failingResult())

	for _, want := range []string{"src/", "src/a.ts", "alice, bob", "core", "Required approvals: 2", "1 rule(s) failed"} {
		if !strings.Contains(output, want) {
			t.Errorf("CLI output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "docs/") {
		t.Error("CLI output should not mention rules that passed")
	}
}

func TestFormatCLI_ApprovedIsEmpty(t *testing.T) {
	if out := FormatCLI(EvalResult{Approved: true}); out != "" {
		t.Errorf("expected empty output for approved result, got %q", out)
	}
}

func TestFormatCI_Annotations(t *testing.T) {
	output := FormatCI(failingResult())

	if !strings.Contains(output, "::error::") {
		t.Errorf("CI output should contain error annotations:\n%s", output)
	}
	if !strings.Contains(output, "src/: requires 2 approval(s)") {
		t.Errorf("CI annotation should carry the rule message:\n%s", output)
	}
}

func TestFormatJSON_RoundTrips(t *testing.T) {
	output, err := FormatJSON(failingResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded EvalResult
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Approved {
		t.Error("approved flag lost in JSON output")
	}
	if len(decoded.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(decoded.Results))
	}
}
