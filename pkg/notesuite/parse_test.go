package notesuite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequiresSubcommand(t *testing.T) {
	_, _, err := Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subcommand required")
}

func TestParseRun(t *testing.T) {
	cmd, config, err := Parse([]string{"-port", "9090", "-db", "sqlite", "-dsn", "notes.db", "run"})
	require.NoError(t, err)
	assert.Equal(t, "run", cmd.Name())
	assert.Equal(t, "9090", config.ServerPort)
	assert.Equal(t, "sqlite", config.DatabaseDriver)
	assert.Equal(t, "notes.db", config.DatabaseDSN)
	assert.Equal(t, 24, config.SessionTTLHours)
}

func TestParseMigrate(t *testing.T) {
	cmd, _, err := Parse([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", cmd.Name())
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, _, err := Parse([]string{"serve"})
	assert.Error(t, err)
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	_, _, err := Parse([]string{"-db", "oracle", "run"})
	assert.Error(t, err)
}
