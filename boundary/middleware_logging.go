package boundary

import (
	"time"

	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/wire"
	"go.uber.org/zap"
)

// LoggingService logs every boundary call at debug level.
type LoggingService struct {
	logger *zap.Logger
	svc    fluxbridge.BoundaryService
}

var _ fluxbridge.BoundaryService = (*LoggingService)(nil)

// NewLoggingService wraps s with call logging.
func NewLoggingService(log *zap.Logger, s fluxbridge.BoundaryService) *LoggingService {
	return &LoggingService{
		logger: log,
		svc:    s,
	}
}

func (l *LoggingService) Parse(unit fluxbridge.SourceUnit) (b []byte, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		file := zap.String("file", unit.FileName)
		if err != nil {
			l.logger.Debug("failed to parse source", zap.Error(err), file, dur)
			return
		}
		l.logger.Debug("source parse", file, zap.Int("source_bytes", len(unit.Source)), zap.Int("tree_bytes", len(b)), dur)
	}(time.Now())
	return l.svc.Parse(unit)
}

func (l *LoggingService) Format(encoded []byte) (s string, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to format tree", zap.Error(err), dur)
			return
		}
		l.logger.Debug("tree format", zap.Int("tree_bytes", len(encoded)), dur)
	}(time.Now())
	return l.svc.Format(encoded)
}

func (l *LoggingService) ResolveVariableType(unit fluxbridge.SourceUnit, varName string) (b []byte, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		name := zap.String("variable", varName)
		if err != nil {
			l.logger.Debug("failed to resolve variable type", zap.Error(err), name, dur)
			return
		}
		tv, derr := wire.DecodeType(b)
		if derr != nil {
			l.logger.Warn("resolved variable type does not decode", zap.Error(derr), name, dur)
			return
		}
		l.logger.Debug("variable type resolve", name, zap.String("type", tv.Text), zap.Bool("unresolved", tv.IsUnresolved()), dur)
	}(time.Now())
	return l.svc.ResolveVariableType(unit, varName)
}
