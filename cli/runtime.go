package cli

import (
	"github.com/spf13/cobra"

	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/logger"
	"github.com/teranos/atlas/runtime"
)

var flagRuntimeDir string

// RuntimeCmd writes the C++ support headers generated code includes
var RuntimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Emit the atlas C++ support headers",
	Long: `Emit the support headers that generated code includes, such as
"atlas/checked.hpp" and "atlas/value.hpp", into an include directory.

Examples:
  atlas runtime --dir include/`,
	RunE: runRuntime,
}

func init() {
	RuntimeCmd.Flags().StringVar(&flagRuntimeDir, "dir", "", "Include directory to write atlas/*.hpp under")
	RootCmd.AddCommand(RuntimeCmd)
}

func runRuntime(cmd *cobra.Command, args []string) error {
	if flagRuntimeDir == "" {
		return errors.NewArgumentError("runtime requires --dir")
	}
	if err := logger.Initialize(flagJSONLogs); err != nil {
		return errors.Wrap(err, "initializing logger")
	}

	if err := runtime.Emit(flagRuntimeDir); err != nil {
		return err
	}
	logger.Infow("Support headers written", "dir", flagRuntimeDir, "headers", len(runtime.Names()))
	return nil
}
