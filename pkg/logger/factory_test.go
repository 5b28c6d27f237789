package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sportkit/pkg/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "sportkit")),
		)

		log.Info("session created")

		record := logLine(t, &buf)
		assert.Equal(t, "session created", record["msg"])
		assert.Equal(t, "sportkit", record["service"])
	})

	t.Run("default level filters debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("invisible")
		assert.Empty(t, buf.Bytes())
	})

	t.Run("development enables debug text logs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("sportkit"), logger.WithOutput(&buf))

		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "service=sportkit")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithFormat(logger.FormatText), logger.WithOutput(&buf))

	log.Warn("join rejected",
		logger.SessionID("s1"),
		logger.ParticipantID("alice"),
		logger.Sport("Football"),
		logger.Error(assert.AnError),
	)

	out := buf.String()
	assert.Contains(t, out, "session_id=s1")
	assert.Contains(t, out, "participant_id=alice")
	assert.Contains(t, out, "sport=Football")
	assert.Contains(t, out, "error=")
}

func TestEmptyAttrsAreElided(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.SessionID(""))
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
}
