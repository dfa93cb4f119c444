package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/modelcache"
)

func TestZapLoggerThroughManager(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := modelcache.New(modelcache.Options{Logger: New(zap.New(core))})

	m.AddObject("User", 1, "u1")
	m.ClearAll("User")

	created := logs.FilterMessage("class created").All()
	require.Len(t, created, 1)
	assert.Equal(t, "modelcache", created[0].LoggerName)
	assert.Equal(t, "User", created[0].ContextMap()["class"])

	cleared := logs.FilterMessage("class cleared").All()
	require.Len(t, cleared, 1)
	assert.Equal(t, zapcore.InfoLevel, cleared[0].Level)
}

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	l.Debug("d", nil)
	l.Info("i", modelcache.Fields{"n": 1})
	l.Warn("w", nil)
	l.Error("e", nil)

	all := logs.All()
	require.Len(t, all, 4)
	assert.Equal(t, []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel},
		[]zapcore.Level{all[0].Level, all[1].Level, all[2].Level, all[3].Level})
	assert.EqualValues(t, 1, all[1].ContextMap()["n"])
}
