package rule

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"revgate/internal/policy"
)

func TestEvaluate_SufficientApprovals(t *testing.T) {
	rules := []policy.Rule{
		{Prefix: "src/", Users: []string{"alice", "bob"}, RequiredApproverCount: 1},
	}

	result, err := Evaluate(rules, nil, []string{"src/a.ts"}, []string{"bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Approved {
		t.Error("expected approved")
	}
	if len(result.Results) != 1 || !result.Results[0].Passed {
		t.Errorf("unexpected results: %+v", result.Results)
	}
}

func TestEvaluate_NoApprovals(t *testing.T) {
	rules := []policy.Rule{
		{Prefix: "src/", Users: []string{"alice", "bob"}, RequiredApproverCount: 1},
	}

	result, err := Evaluate(rules, nil, []string{"src/a.ts"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Approved {
		t.Error("expected rejection")
	}

	res := result.Results[0]
	if res.Passed || !res.Matched {
		t.Fatalf("unexpected result: %+v", res)
	}
	// The diagnostic must name the eligible approvers and the actual
	// count, reproducible verbatim from the inputs.
	if !strings.Contains(res.Message, "alice, bob") {
		t.Errorf("diagnostic should name eligible approvers, got %q", res.Message)
	}
	if !strings.Contains(res.Message, "found 0") {
		t.Errorf("diagnostic should state the actual count, got %q", res.Message)
	}
	if !strings.Contains(res.Message, "src/a.ts") {
		t.Errorf("diagnostic should list affected files, got %q", res.Message)
	}
}

func TestEvaluate_PrefixMatchIsLiteral(t *testing.T) {
	tests := []struct {
		prefix  string
		file    string
		matched bool
	}{
		{"docs/", "docs/readme.md", true},
		{"doc", "docs/readme.md", true},
		{"docu", "docs/readme.md", false},
		{"src/f", "src/foo", true},
		{"src/foo", "src/f", false},
		{"", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"_"+tt.file, func(t *testing.T) {
			rules := []policy.Rule{
				{Prefix: tt.prefix, Users: []string{"alice"}, RequiredApproverCount: 1},
			}
			result, err := Evaluate(rules, nil, []string{tt.file}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Results[0].Matched != tt.matched {
				t.Errorf("prefix %q vs file %q: matched = %v, want %v",
					tt.prefix, tt.file, result.Results[0].Matched, tt.matched)
			}
		})
	}
}

func TestEvaluate_UnmatchedRulesDoNotGate(t *testing.T) {
	rules := []policy.Rule{
		{Prefix: "src/", Users: []string{"alice"}, RequiredApproverCount: 5},
	}

	result, err := Evaluate(rules, nil, []string{"docs/readme.md"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Approved {
		t.Error("rule matching no file must be vacuously satisfied")
	}
	if result.Results[0].Matched {
		t.Error("rule should not be marked matched")
	}
}

func TestEvaluate_EmptyRulesApprovesAnything(t *testing.T) {
	result, err := Evaluate(nil, nil, []string{"src/a.ts", "secrets/key.pem"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Approved {
		t.Error("empty reviewers mapping must approve any change")
	}
}

func TestEvaluate_AllMatchedRulesMustPass(t *testing.T) {
	rules := []policy.Rule{
		{Prefix: "src/", Users: []string{"alice"}, RequiredApproverCount: 1},
		{Prefix: "docs/", Users: []string{"bob"}, RequiredApproverCount: 1},
	}
	files := []string{"src/a.ts", "docs/readme.md"}

	// Only the src/ rule is satisfied.
	result, err := Evaluate(rules, nil, files, []string{"alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Approved {
		t.Error("one failing matched rule must reject the change")
	}
	if !result.Results[0].Passed || result.Results[1].Passed {
		t.Errorf("unexpected per-rule outcomes: %+v", result.Results)
	}
}

func TestEvaluate_TeamApprovals(t *testing.T) {
	teams := map[string]policy.Team{
		"core": {Members: []string{"alice", "bob"}},
	}
	rules := []policy.Rule{
		{Prefix: "src/", Teams: []string{"core"}, RequiredApproverCount: 2},
	}

	result, err := Evaluate(rules, teams, []string{"src/a.ts"}, []string{"alice", "bob", "mallory"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Approved {
		t.Error("expected approved")
	}
	// mallory is not in the approver set and must not count.
	if got := result.Results[0].RelevantApprovals; len(got) != 2 {
		t.Errorf("expected 2 relevant approvals, got %v", got)
	}
}

func TestEvaluate_UndefinedTeamAbortsWithoutVerdict(t *testing.T) {
	rules := []policy.Rule{
		{Prefix: "src/", Teams: []string{"core-team"}, RequiredApproverCount: 1},
	}

	_, err := Evaluate(rules, map[string]policy.Team{}, []string{"src/a.ts"}, nil)
	var cfgErr *policy.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestEvaluate_ResultsFollowDeclarationOrder(t *testing.T) {
	rules := []policy.Rule{
		{Prefix: "zz/", RequiredApproverCount: 0},
		{Prefix: "aa/", RequiredApproverCount: 0},
	}
	result, err := Evaluate(rules, nil, []string{"zz/x", "aa/y"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Results[0].Prefix != "zz/" || result.Results[1].Prefix != "aa/" {
		t.Errorf("results out of declaration order: %+v", result.Results)
	}
}

// Property: a matched rule with requiredApproverCount = 0 passes
// regardless of the approvals supplied.
func TestEvaluate_ZeroCountAlwaysPasses_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("count 0 passes when matched", prop.ForAll(
		func(file string, approvals []string) bool {
			rules := []policy.Rule{
				{Prefix: "", Users: []string{"alice"}, RequiredApproverCount: 0},
			}
			result, err := Evaluate(rules, nil, []string{file}, approvals)
			if err != nil {
				return false
			}
			return result.Approved && result.Results[0].Matched && result.Results[0].Passed
		},
		gen.Identifier(),
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
