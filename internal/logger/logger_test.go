package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitialize_ValidLevels(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	levels := []string{"debug", "info", "warn", "error"}

	for _, lvl := range levels {
		t.Run(lvl, func(t *testing.T) {
			err := Initialize(lvl, "json")
			assert.NoError(t, err, "expected no error for level %s", lvl)
			assert.IsType(t, &zap.SugaredLogger{}, Log)

			assert.NotPanics(t, func() {
				Log.Infow("test log", "level", lvl)
			})
		})
	}
}

func TestInitialize_ConsoleEncoding(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	assert.NoError(t, Initialize("info", "console"))
	assert.NotPanics(t, func() { Log.Info("console") })
}

func TestInitialize_InvalidLevel(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	err := Initialize("not-a-level", "json")
	assert.Error(t, err)
	assert.Same(t, originalLog, Log)
}

func TestInitialize_InvalidEncoding(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	err := Initialize("info", "yaml")
	assert.Error(t, err)
}

func TestLog_NopBeforeInitialize(t *testing.T) {
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Log.Infow("nop logger test")
		Sync()
	})
}
