package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/atlas/errors"
)

// CheckCmd verifies that a generated header is up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a generated header is up to date",
	Long: `Check regenerates the header in memory and compares it with --output.

Exit codes:
  0 - Header is up to date
  1 - Header is out of date
  2 - Error during check

Examples:
  atlas check --input=types.atlas --output=units.hpp`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if flagOutput == "" {
		exitCheckError(errors.NewArgumentError("check requires --output"))
	}

	cfg, err := setup()
	if err != nil {
		exitCheckError(err)
	}

	out, err := generate(cfg)
	if err != nil {
		exitCheckError(err)
	}

	existing, err := os.ReadFile(flagOutput)
	if err != nil {
		exitCheckError(errors.NewFileError(err, "reading "+flagOutput))
	}

	if string(existing) == out.Header {
		fmt.Println("✓ Header is up to date")
		return nil
	}

	fmt.Println("✗ Header is out of date - rerun atlas to regenerate")
	return errors.Newf("%s does not match its inputs", flagOutput)
}

// exitCheckError distinguishes check failures (exit 2) from a stale header
// (exit 1, via the returned error)
func exitCheckError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(2)
}
