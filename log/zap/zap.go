// Package zap adapts a *zap.Logger to modelcache.Logger.
package zap

import (
	"github.com/unkn0wn-root/modelcache"
	"go.uber.org/zap"
)

var _ modelcache.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "modelcache" so cache events are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("modelcache")} }

func (z ZapLogger) Debug(msg string, f modelcache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f modelcache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f modelcache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f modelcache.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f modelcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
