package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/atlas/config"
	"github.com/teranos/atlas/errors"
)

// resetFlags restores the package flag state between tests; cobra keeps
// the bound variables across Execute calls
func resetFlags(t *testing.T) {
	t.Helper()
	flagKind = ""
	flagNamespace = ""
	flagName = ""
	flagDescription = ""
	flagDefaultValue = ""
	flagGuardPrefix = ""
	flagGuardSeparator = ""
	flagUpcaseGuard = ""
	flagInput = ""
	flagOutput = ""
	flagInteractions = false
	flagVersion = false
	flagJSONLogs = false
	flagWatch = false
	config.Reset()
	t.Cleanup(config.Reset)
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestValidateSingleModeRequiresIdentity(t *testing.T) {
	resetFlags(t)
	flagKind = "struct"
	flagName = "MyInt"
	// description missing

	err := validateFlagCombinations(RootCmd)
	require.Error(t, err)
	assert.True(t, errors.IsArgumentError(err))
}

func TestValidateInteractionsRequireInput(t *testing.T) {
	resetFlags(t)
	flagInteractions = true

	err := validateFlagCombinations(RootCmd)
	require.Error(t, err)
	assert.True(t, errors.IsArgumentError(err))
}

func TestValidateInputExcludesSingleTypeFlags(t *testing.T) {
	resetFlags(t)
	flagInput = "types.atlas"
	flagDescription = "strong int"

	err := validateFlagCombinations(RootCmd)
	require.Error(t, err)
	assert.True(t, errors.IsArgumentError(err))
}

func TestValidateWatchRequiresOutput(t *testing.T) {
	resetFlags(t)
	flagInput = "types.atlas"
	flagWatch = true

	err := validateFlagCombinations(RootCmd)
	require.Error(t, err)
	assert.True(t, errors.IsArgumentError(err))
}

func TestGenerateSingleType(t *testing.T) {
	resetFlags(t)
	flagKind = "struct"
	flagNamespace = "units"
	flagName = "Meters"
	flagDescription = "strong double; +, <=>"

	out, err := generate(loadConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "struct Meters")
	assert.Contains(t, out.Header, "namespace units {")
	assert.Contains(t, out.Header, "operator<=>")
}

func TestGenerateSingleTypeUsesConfigGuardDefaults(t *testing.T) {
	resetFlags(t)
	flagKind = "struct"
	flagNamespace = "units"
	flagName = "Meters"
	flagDescription = "strong double"

	// config default upcases the guard
	out, err := generate(loadConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "#ifndef UNITS_METERS_")

	flagUpcaseGuard = "no"
	out, err = generate(loadConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "#ifndef units_Meters_")
}

func TestGenerateInvalidKind(t *testing.T) {
	resetFlags(t)
	flagKind = "union"
	flagName = "A"
	flagDescription = "strong int"

	_, err := generate(loadConfig(t))
	require.Error(t, err)
	assert.True(t, errors.IsDescriptionParseError(err))
}

func TestGenerateBatchFromFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "types.atlas")
	require.NoError(t, os.WriteFile(input, []byte(`
kind=struct
namespace=units

[type]
name=Meters
description=strong double; +

[type]
name=Seconds
description=strong double; -
`), 0o644))
	flagInput = input

	out, err := generate(loadConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "struct Meters")
	assert.Contains(t, out.Header, "struct Seconds")
	assert.Equal(t, 1, strings.Count(out.Header, "#ifndef "))
}

func TestGenerateInteractionsFromFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "ops.atlas")
	require.NoError(t, os.WriteFile(input, []byte(`
namespace=units
Meters * Factor -> Meters
`), 0o644))
	flagInput = input
	flagInteractions = true

	out, err := generate(loadConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "operator*(Meters const& lhs, Factor const& rhs)")
}

func TestGenerateMissingInputIsFileError(t *testing.T) {
	resetFlags(t)
	flagInput = filepath.Join(t.TempDir(), "absent.atlas")

	_, err := generate(loadConfig(t))
	require.Error(t, err)
	assert.True(t, errors.IsFileError(err))
}

func TestGenerateDirectoryInputIsFileError(t *testing.T) {
	resetFlags(t)
	flagInput = t.TempDir()

	_, err := generate(loadConfig(t))
	require.Error(t, err)
	assert.True(t, errors.IsFileError(err))
}

func TestGenerateOnceWritesOutputFile(t *testing.T) {
	resetFlags(t)
	flagKind = "struct"
	flagNamespace = "units"
	flagName = "Meters"
	flagDescription = "strong double"
	flagOutput = filepath.Join(t.TempDir(), "meters.hpp")

	require.NoError(t, generateOnce(loadConfig(t)))

	written, err := os.ReadFile(flagOutput)
	require.NoError(t, err)
	assert.Contains(t, string(written), "struct Meters")
}

func TestGenerateOnceNoPartialOutputOnError(t *testing.T) {
	resetFlags(t)
	flagKind = "struct"
	flagNamespace = "units"
	flagName = "Meters"
	flagDescription = "strong double; frobnicate"
	flagOutput = filepath.Join(t.TempDir(), "meters.hpp")

	require.Error(t, generateOnce(loadConfig(t)))

	_, err := os.Stat(flagOutput)
	assert.True(t, os.IsNotExist(err))
}
