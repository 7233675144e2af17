package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoSubcommand is returned when no subcommand is provided
var ErrNoSubcommand = errors.New("missing subcommand: usage: revgate <check|validate> [flags]")

// ErrMissingFlagValue is returned when a flag requires a value but none is provided
var ErrMissingFlagValue = errors.New("flag requires a value")

// Subcommand represents the CLI subcommand
type Subcommand string

const (
	SubcommandCheck    Subcommand = "check"
	SubcommandValidate Subcommand = "validate"
)

// DefaultPageLimit is the page size of the collaborator's data source.
// A list input exactly at this length may have been truncated upstream.
const DefaultPageLimit = 100

// Command represents the parsed CLI input
type Command struct {
	Subcommand Subcommand // "check" or "validate"

	// Input files
	PolicyPath  string // --policy <path>
	FilesPath   string // --files <path>
	ReviewsPath string // --reviews <path>
	CommitsPath string // --commits <path>

	// Output flags
	JSONOutput bool   // --json
	CIMode     bool   // --ci
	ReportFile string // --report-file <path>
	Verbose    bool   // --verbose

	// PageLimit is the collaborator's pagination cap; a list input at
	// this length triggers a truncation warning.
	PageLimit int // --page-limit <n>
}

// ParseArgs parses CLI arguments into a Command.
// It expects args to be os.Args[1:] (excluding the program name).
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrNoSubcommand
	}

	// First arg must be "check" or "validate"
	subcommand := args[0]
	if subcommand != "check" && subcommand != "validate" {
		return Command{}, ErrNoSubcommand
	}

	cmd := Command{
		Subcommand: Subcommand(subcommand),
		PageLimit:  DefaultPageLimit,
	}

	i := 1 // Start after subcommand

	for i < len(args) {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			return Command{}, fmt.Errorf("unexpected argument: %s", arg)
		}
		flagName := strings.TrimPrefix(arg, "--")

		// Handle flags that take values
		switch flagName {
		case "policy":
			if i+1 >= len(args) {
				return Command{}, ErrMissingFlagValue
			}
			i++
			cmd.PolicyPath = args[i]
		case "files":
			if i+1 >= len(args) {
				return Command{}, ErrMissingFlagValue
			}
			i++
			cmd.FilesPath = args[i]
		case "reviews":
			if i+1 >= len(args) {
				return Command{}, ErrMissingFlagValue
			}
			i++
			cmd.ReviewsPath = args[i]
		case "commits":
			if i+1 >= len(args) {
				return Command{}, ErrMissingFlagValue
			}
			i++
			cmd.CommitsPath = args[i]
		case "report-file":
			if i+1 >= len(args) {
				return Command{}, ErrMissingFlagValue
			}
			i++
			cmd.ReportFile = args[i]
		case "page-limit":
			if i+1 >= len(args) {
				return Command{}, ErrMissingFlagValue
			}
			i++
			limit, err := strconv.Atoi(args[i])
			if err != nil || limit <= 0 {
				return Command{}, fmt.Errorf("invalid --page-limit value: %s", args[i])
			}
			cmd.PageLimit = limit
		case "json":
			cmd.JSONOutput = true
		case "ci":
			cmd.CIMode = true
		case "verbose":
			cmd.Verbose = true
		default:
			return Command{}, fmt.Errorf("unknown flag: --%s", flagName)
		}
		i++
	}

	return cmd, nil
}
