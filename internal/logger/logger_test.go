package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.NotNil(t, logger)
	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger_WithContextLogger(t *testing.T) {
	customLogger := logrus.NewEntry(logrus.New()).WithField("source", "skills/a/SKILL.md")
	ctx := WithLogger(context.Background(), customLogger)

	retrieved := G(ctx)

	require.NotNil(t, retrieved)
	assert.Equal(t, "skills/a/SKILL.md", retrieved.Data["source"])
}

func TestGetLogger_WithoutContextLogger(t *testing.T) {
	retrieved := G(context.Background())

	require.NotNil(t, retrieved)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestJSONFormatFieldNames(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	setLoggerFormat(l, "json")

	ctx := WithLogger(context.Background(), logrus.NewEntry(l))
	G(ctx).Warn("skipping document")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["logLevel"])
	assert.Equal(t, "skipping document", entry["message"])

	ts, ok := entry["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)
}

func TestConfigure(t *testing.T) {
	prevLevel := L.Logger.GetLevel()
	prevFormatter := L.Logger.Formatter
	t.Cleanup(func() {
		L.Logger.SetLevel(prevLevel)
		L.Logger.Formatter = prevFormatter
	})

	t.Run("valid level and json format", func(t *testing.T) {
		require.NoError(t, Configure("debug", "json"))
		assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, L.Logger.Formatter)
	})

	t.Run("empty level keeps current", func(t *testing.T) {
		require.NoError(t, SetLogLevel("warn"))
		require.NoError(t, Configure("", "text"))
		assert.Equal(t, logrus.WarnLevel, L.Logger.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)
	})

	t.Run("invalid level", func(t *testing.T) {
		err := Configure("loud", "text")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "loud"))
	})
}
