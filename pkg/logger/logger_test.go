package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("development environment is text at debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("development", "formsaas"), logger.WithOutput(buf))
		log.Debug("details")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=formsaas")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production environment drops debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "formsaas"), logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("shown")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestContextExtraction(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("trace", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
	log.InfoContext(ctx, "with value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["trace"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.True(t, logger.CustomerID("").Equal(slog.Attr{}))
	assert.Equal(t, "cus_1", logger.CustomerID("cus_1").Value.String())
	assert.Equal(t, int64(1500), logger.Duration(1500*time.Millisecond).Value.Int64())
	assert.Equal(t, "jo***@example.com", logger.Email("john@example.com").Value.String())
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"john@example.com": "jo***@example.com",
		"a@b.co":           "a***@b.co",
		"not-an-email":     "***",
		"@example.com":     "***",
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.MaskEmail(in), in)
	}
}
