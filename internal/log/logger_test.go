// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureAttachesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf, Service: "fsd-test", Version: "v0.0.1"})

	logger := WithComponent("core")
	logger.Info().Str("event", "test.event").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fsd-test", entry["service"])
	assert.Equal(t, "v0.0.1", entry["version"])
	assert.Equal(t, "core", entry["component"])
	assert.Equal(t, "test.event", entry["event"])
	assert.Equal(t, "hello", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestConfigureLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf, Service: "fsd-test"})

	logger := Base()
	logger.Debug().Msg("suppressed")
	assert.Empty(t, buf.Bytes())
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf, Service: "fsd-test"})

	require.True(t, SetLevel("debug"))
	logger := Base()
	logger.Debug().Msg("visible")
	assert.NotEmpty(t, buf.Bytes())

	assert.False(t, SetLevel("extremely-verbose"))

	// Restore so later tests are not affected.
	require.True(t, SetLevel("info"))
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "not-a-level", Output: &buf, Service: "fsd-test"})

	logger := Base()
	logger.Info().Msg("still logs")
	assert.NotEmpty(t, buf.Bytes())
}
