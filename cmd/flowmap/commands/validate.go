package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
)

const (
	validateCmdUse   = "validate <file.json|->"
	validateCmdShort = "Validate a migration response payload against the wire schema"
	validateArgCount = 1
	stdinPath        = "-"
	stdinLabel       = "stdin"
)

// exitCodeValidationFailure is the exit code for validation failures.
const exitCodeValidationFailure = 2

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand() *cobra.Command {
	var colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   validateCmdUse,
		Short: validateCmdShort,
		Long: `Validate a migration response JSON payload against the canonical
response schema.

Examples:
  flowmap validate response.json
  flowmap validate - < response.json
`,
		Args: cobra.ExactArgs(validateArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], colorize, nocolor)
		},
	}

	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(inputPath string, colorize, nocolor bool) error {
	// Color setup.
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	} else if colorize {
		color.NoColor = false //nolint:reassign // intentional override of library global
	}

	raw, inputLabel, readErr := readInput(inputPath)
	if readErr != nil {
		return readErr
	}

	issues, err := flowdata.ValidatePayload(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema validation error: %v\n", err)
		os.Exit(exitCodeValidationFailure)
	}

	if len(issues) == 0 {
		color.New(color.FgGreen).Fprintf(os.Stdout, "Payload is valid (%s)\n", inputLabel)

		return nil
	}

	color.New(color.FgRed).Fprintf(os.Stdout, "Payload validation failed (%s)\n", inputLabel)

	fmt.Fprintf(os.Stdout, "\nErrors:\n")

	for _, issue := range issues {
		color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s\n", issue.Field, issue.Description)
	}

	os.Exit(1)

	return nil
}

func readInput(inputPath string) ([]byte, string, error) {
	if inputPath == stdinPath {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, stdinLabel, fmt.Errorf("read stdin: %w", err)
		}

		return raw, stdinLabel, nil
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, inputPath, fmt.Errorf("read input: %w", err)
	}

	return raw, inputPath, nil
}
