package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"revgate/internal/change"
	"revgate/internal/cli"
	"revgate/internal/decision"
	"revgate/internal/policy"
)

// Exit codes. Distinct codes let the caller tell "evaluated and
// rejected" apart from "could not evaluate".
const (
	exitApproved    = 0
	exitUsage       = 1
	exitRejected    = 2
	exitConfigError = 3
	exitNoInput     = 4
)

func main() {
	exitCode := run(os.Args[1:], os.Environ(), ".")
	os.Exit(exitCode)
}

// run orchestrates the full execution flow.
// It returns an exit code (0 for approved, non-zero otherwise).
// This function is separated from main() to enable testing.
func run(args []string, environ []string, defaultDir string) int {
	cmd, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitUsage
	}

	logger := newLogger(cmd.Verbose)

	// Resolve policy path from flag or environment
	policyPath := resolvePolicyPath(cmd.PolicyPath, environ, defaultDir)
	if policyPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no policy document given (--policy or REVGATE_POLICY)")
		return exitUsage
	}

	pol, err := policy.LoadFromPath(policyPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "policy document not found: %s\n", policyPath)
			return exitNoInput
		}
		var cfgErr *policy.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, "Error:", cfgErr)
			return exitConfigError
		}
		fmt.Fprintf(os.Stderr, "failed to read policy: %v\n", err)
		return exitNoInput
	}

	if cmd.Subcommand == cli.SubcommandValidate {
		return runValidate(cmd, pol, policyPath)
	}

	ciMode := cmd.CIMode || getEnvBool(environ, "REVGATE_CI") || getEnvBool(environ, "CI")

	ch, code := loadChange(cmd, pol, logger)
	if code != exitApproved {
		return code
	}

	result, err := decision.Evaluate(pol, ch)
	if err != nil {
		var cfgErr *policy.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, "Error:", cfgErr)
			return exitConfigError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	logRuleResults(logger, result)

	if cmd.ReportFile != "" {
		if err := decision.WriteReport(result, cmd.ReportFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write report: %s: %v\n", cmd.ReportFile, err)
			return exitUsage
		}
	}

	if cmd.JSONOutput {
		jsonOutput, err := decision.FormatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot format result: %v\n", err)
			return exitUsage
		}
		fmt.Println(jsonOutput)
	} else if ciMode {
		fmt.Fprint(os.Stderr, decision.FormatCI(result))
	} else {
		fmt.Fprint(os.Stderr, decision.FormatCLI(result))
	}

	if !result.Approved {
		return exitRejected
	}
	return exitApproved
}

// runValidate handles the validate subcommand: the policy parsed and
// validated already, so only report success.
func runValidate(cmd cli.Command, pol policy.Policy, policyPath string) int {
	if cmd.JSONOutput {
		fmt.Printf(`{"valid":true,"policyPath":%q,"rules":%d,"teams":%d,"overrides":%d}`+"\n",
			policyPath, len(pol.Rules), len(pol.Teams), len(pol.Overrides))
	} else {
		fmt.Printf("✓ Policy valid: %d rule(s), %d team(s), %d override(s)\n",
			len(pol.Rules), len(pol.Teams), len(pol.Overrides))
	}
	return exitApproved
}

// loadChange assembles the Change from the collaborator's input files.
// The file list is required; reviews default to empty.
//
// The commit list may be omitted only when no override is restricted
// by committer. A users clause holds vacuously over an empty commit
// list, so treating an absent input as empty would let missing input
// waive the control; that is "cannot evaluate", not "no commits".
func loadChange(cmd cli.Command, pol policy.Policy, logger *slog.Logger) (change.Change, int) {
	var ch change.Change

	if cmd.FilesPath == "" {
		fmt.Fprintln(os.Stderr, "Error: check requires --files")
		return ch, exitUsage
	}
	files, err := change.LoadModifiedFiles(cmd.FilesPath)
	if err != nil {
		return ch, reportInputError("file list", cmd.FilesPath, err)
	}
	ch.ModifiedFilePaths = files
	warnIfTruncated(logger, "files", len(files), cmd.PageLimit)

	if cmd.ReviewsPath != "" {
		reviews, err := change.LoadReviews(cmd.ReviewsPath)
		if err != nil {
			return ch, reportInputError("review list", cmd.ReviewsPath, err)
		}
		ch.Approvals = change.DeriveApprovals(reviews)
		warnIfTruncated(logger, "reviews", len(reviews), cmd.PageLimit)
	}

	if cmd.CommitsPath != "" {
		committers, err := change.LoadCommitters(cmd.CommitsPath)
		if err != nil {
			return ch, reportInputError("commit list", cmd.CommitsPath, err)
		}
		ch.Committers = committers
		warnIfTruncated(logger, "commits", len(committers), cmd.PageLimit)
	} else if hasCommitterOverride(pol) {
		fmt.Fprintln(os.Stderr, "commit list required: an override is restricted by committer; supply --commits")
		return ch, exitNoInput
	}

	return ch, exitApproved
}

// hasCommitterOverride reports whether any override carries an
// onlyModifiedByUsers clause.
func hasCommitterOverride(pol policy.Policy) bool {
	for _, o := range pol.Overrides {
		if o.HasUsersClause() {
			return true
		}
	}
	return false
}

func reportInputError(kind, path string, err error) int {
	if os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "%s not found: %s\n", kind, path)
	} else {
		fmt.Fprintf(os.Stderr, "cannot read %s: %s: %v\n", kind, path, err)
	}
	return exitNoInput
}

// warnIfTruncated surfaces the known limitation that the collaborator's
// data source pages its lists: a list exactly at the page cap may be a
// partial fetch, and a partial fetch evaluates against partial data.
func warnIfTruncated(logger *slog.Logger, input string, length, pageLimit int) {
	if length >= pageLimit {
		logger.Warn("input list at pagination cap; fetch may be truncated",
			"input", input, "length", length, "pageLimit", pageLimit)
	}
}

// logRuleResults logs one line per rule, in declaration order.
func logRuleResults(logger *slog.Logger, result decision.Result) {
	for _, res := range result.Rules.Results {
		if !res.Matched {
			logger.Debug("rule not matched", "prefix", res.Prefix)
			continue
		}
		if res.Passed {
			logger.Info("rule passed",
				"prefix", res.Prefix,
				"required", res.RequiredCount,
				"approvals", len(res.RelevantApprovals))
		} else {
			logger.Info("rule failed", "prefix", res.Prefix, "detail", res.Message)
		}
	}
	if result.OverrideApplied {
		logger.Info("override applied",
			"index", result.OverrideIndex,
			"description", result.OverrideDescription)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolvePolicyPath determines the policy path from flag or env var
func resolvePolicyPath(flagValue string, environ []string, defaultDir string) string {
	path := flagValue
	if path == "" {
		path = getEnv(environ, "REVGATE_POLICY")
	}
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(defaultDir, path)
}

// getEnv extracts a variable's value from the environment slice
func getEnv(environ []string, name string) string {
	prefix := name + "="
	for _, env := range environ {
		if strings.HasPrefix(env, prefix) {
			return strings.TrimPrefix(env, prefix)
		}
	}
	return ""
}

// getEnvBool checks if an environment variable is set to a truthy value
func getEnvBool(environ []string, name string) bool {
	val := strings.ToLower(getEnv(environ, name))
	return val == "true" || val == "1" || val == "yes"
}
