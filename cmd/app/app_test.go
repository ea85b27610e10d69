package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrateCmd_ResetFlag(t *testing.T) {
	cmd := newMigrateCmd()

	flag := cmd.Flags().Lookup("reset")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)

	require.NoError(t, cmd.ParseFlags([]string{"--reset"}))
	reset, err := cmd.Flags().GetBool("reset")
	require.NoError(t, err)
	assert.True(t, reset)
}
