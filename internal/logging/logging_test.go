package logging_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/autoprep/internal/logging"
)

func TestSetupWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	logging.SetupWriter(&buf, false)
	log.Debug().Msg("hidden")
	log.Warn().Str("user", "alice").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "user=alice")

	buf.Reset()
	logging.SetupWriter(&buf, true)
	log.Debug().Msg("debug now")
	assert.Contains(t, buf.String(), "debug now")

	buf.Reset()
	logging.Discard()
	log.Error().Msg("gone")
	assert.Empty(t, buf.String())
}

func TestSetupFile(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	path, closer, err := logging.SetupFile("autoprep-test.log", true)
	require.NoError(t, err)
	log.Debug().Msg("into the file")
	require.NoError(t, closer.Close())
	logging.Discard()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into the file")
}
