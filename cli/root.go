// Package cli wires the atlas command line: flag parsing, configuration
// resolution and generation orchestration.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/atlas/config"
	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/generator"
	"github.com/teranos/atlas/inputfile"
	"github.com/teranos/atlas/interaction"
	"github.com/teranos/atlas/logger"
	"github.com/teranos/atlas/version"
)

var (
	flagKind           string
	flagNamespace      string
	flagName           string
	flagDescription    string
	flagDefaultValue   string
	flagGuardPrefix    string
	flagGuardSeparator string
	flagUpcaseGuard    string
	flagInput          string
	flagOutput         string
	flagInteractions   bool
	flagVersion        bool
	flagJSONLogs       bool
	flagWatch          bool
)

// RootCmd generates strong-type headers; `atlas check` verifies them
var RootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Generate C++ strong-type headers from compact descriptions",
	Long: `Atlas generates C++ header files defining strong wrapper types from
compact textual descriptions, plus cross-type interaction operators.

Examples:
  atlas --kind=struct --namespace=units --name=Meters --description="strong double; +, -, <=>"
  atlas --input=types.atlas --output=units.hpp
  atlas --input=ops.atlas --interactions --output=ops.hpp
  atlas --input=types.atlas --output=units.hpp --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&flagKind, "kind", "", "Type kind: struct or class")
	pf.StringVar(&flagNamespace, "namespace", "", "Namespace of the generated type (may contain ::)")
	pf.StringVar(&flagName, "name", "", "Name of the generated type")
	pf.StringVar(&flagDescription, "description", "", `Type description, e.g. "strong int; +, ==, hash"`)
	pf.StringVar(&flagDefaultValue, "default-value", "", "Brace-initializer for the value member")
	pf.StringVar(&flagGuardPrefix, "guard-prefix", "", "Include-guard prefix (default: qualified type name)")
	pf.StringVar(&flagGuardSeparator, "guard-separator", "", "Include-guard separator (default: _)")
	pf.StringVar(&flagUpcaseGuard, "upcase-guard", "", "Upcase the include guard: true|false|1|0|yes|no")
	pf.StringVar(&flagInput, "input", "", "Read type definitions (or interactions) from a file")
	pf.StringVar(&flagOutput, "output", "", "Write the header to a file instead of stdout")
	pf.BoolVar(&flagInteractions, "interactions", false, "Treat --input as an interaction description file")
	pf.BoolVar(&flagJSONLogs, "json-logs", false, "Emit logs as JSON")

	RootCmd.Flags().BoolVar(&flagVersion, "version", false, "Print version information and exit")
	RootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Regenerate whenever --input changes (requires --output)")

	RootCmd.AddCommand(CheckCmd)
}

// Execute runs the root command; main exits 1 on error
func Execute() error {
	return RootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return nil
	}

	cfg, err := setup()
	if err != nil {
		return err
	}

	if err := validateFlagCombinations(cmd); err != nil {
		return err
	}

	if flagWatch {
		return runWatch(cfg)
	}
	return generateOnce(cfg)
}

// setup initializes logging and loads configuration
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(flagJSONLogs || cfg.Log.JSON); err != nil {
		return nil, errors.Wrap(err, "initializing logger")
	}
	return cfg, nil
}

func validateFlagCombinations(cmd *cobra.Command) error {
	if flagInput == "" {
		if flagInteractions {
			return errors.NewArgumentError("--interactions requires --input")
		}
		if flagWatch {
			return errors.NewArgumentError("--watch requires --input and --output")
		}
		if flagKind == "" || flagName == "" || flagDescription == "" {
			return errors.NewArgumentError(
				"single-type mode requires --kind, --namespace, --name and --description (or use --input)")
		}
		if !cmd.Flags().Changed("namespace") {
			return errors.NewArgumentError("--namespace is required (pass --namespace= for the global namespace)")
		}
		return nil
	}

	if flagDescription != "" || flagName != "" || flagKind != "" {
		return errors.NewArgumentError("--kind/--name/--description are mutually exclusive with --input")
	}
	if flagWatch && flagOutput == "" {
		return errors.NewArgumentError("--watch requires --output")
	}
	return nil
}

// generateOnce performs one full generation pass and writes the result
func generateOnce(cfg *config.Config) error {
	out, err := generate(cfg)
	if err != nil {
		return err
	}

	printWarnings(out.Warnings)

	if flagOutput == "" {
		fmt.Print(out.Header)
		return nil
	}
	// the header is fully assembled before any byte reaches disk, so a
	// failed run never leaves a partial file behind
	if err := os.WriteFile(flagOutput, []byte(out.Header), 0o644); err != nil {
		return errors.NewFileError(err, "writing "+flagOutput)
	}
	logger.Infow("Header written", "path", flagOutput)
	return nil
}

// generate assembles the header for the current flag set
func generate(cfg *config.Config) (*generator.Output, error) {
	if flagInput == "" {
		desc, err := singleTypeDescription(cfg)
		if err != nil {
			return nil, err
		}
		return generator.Generate(*desc)
	}

	content, err := readInput(flagInput)
	if err != nil {
		return nil, err
	}

	if flagInteractions {
		file, err := interaction.ParseFile(content)
		if err != nil {
			return nil, err
		}
		applyInteractionGuardDefaults(file, cfg)
		return interaction.Generate(file)
	}

	descs, err := inputfile.ParseTypes(content)
	if err != nil {
		return nil, err
	}
	for i := range descs {
		applyGuardDefaults(&descs[i], cfg)
	}
	return generator.GenerateBatch(descs)
}

func singleTypeDescription(cfg *config.Config) (*description.StrongTypeDescription, error) {
	kind, err := description.ParseKind(flagKind)
	if err != nil {
		return nil, err
	}

	desc := &description.StrongTypeDescription{
		Kind:           kind,
		TypeNamespace:  flagNamespace,
		TypeName:       flagName,
		Description:    flagDescription,
		DefaultValue:   flagDefaultValue,
		GuardPrefix:    flagGuardPrefix,
		GuardSeparator: flagGuardSeparator,
	}

	upcase := cfg.Guard.Upcase
	if flagUpcaseGuard != "" {
		upcase, err = description.ParseBoolOption(flagUpcaseGuard)
		if err != nil {
			return nil, err
		}
	}
	desc.UpcaseGuard = upcase

	applyGuardDefaults(desc, cfg)
	return desc, nil
}

// applyGuardDefaults fills guard controls that neither the description
// source nor the flags set: flags override config, config overrides the
// built-in defaults.
func applyGuardDefaults(desc *description.StrongTypeDescription, cfg *config.Config) {
	if desc.GuardPrefix == "" {
		desc.GuardPrefix = firstNonEmpty(flagGuardPrefix, cfg.Guard.Prefix)
	}
	if desc.GuardSeparator == "" {
		desc.GuardSeparator = firstNonEmpty(flagGuardSeparator, cfg.Guard.Separator)
	}
}

func applyInteractionGuardDefaults(file *interaction.File, cfg *config.Config) {
	if file.GuardPrefix == "" {
		file.GuardPrefix = firstNonEmpty(flagGuardPrefix, cfg.Guard.Prefix)
	}
	if flagGuardSeparator != "" {
		file.GuardSeparator = flagGuardSeparator
	}
	if flagUpcaseGuard != "" {
		if upcase, err := description.ParseBoolOption(flagUpcaseGuard); err == nil {
			file.UpcaseGuard = upcase
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// readInput loads the input file; a directory path is a FileError
func readInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.NewFileError(err, "opening "+path)
	}
	if info.IsDir() {
		return "", errors.NewFileError(errors.Newf("%s is a directory", path), "opening "+path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewFileError(err, "reading "+path)
	}
	return string(content), nil
}

// printWarnings reports redundant-request diagnostics; they never change
// the exit code
func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "Warnings:")
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "  "+w)
		logger.Warnf("%s", w)
	}
}
