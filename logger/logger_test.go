package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeBothModes(t *testing.T) {
	require.NoError(t, Initialize(false))
	assert.False(t, JSONOutput)
	assert.NotNil(t, Logger)

	require.NoError(t, Initialize(true))
	assert.True(t, JSONOutput)
	assert.NotNil(t, Logger)

	Cleanup()
}

func TestNopLoggerBeforeInitialize(t *testing.T) {
	// package init installs a nop logger, so logging never panics
	Infow("before initialize", "key", "value")
	Warnf("before initialize %d", 1)
}
