package logger

import (
	"fmt"
	"io"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a debug level console logger writing to w.
func New(w io.Writer) *zap.Logger {
	l, _ := (&Config{Format: FormatConsole, Level: zapcore.DebugLevel}).New(w)
	return l
}

// New builds a logger writing to w in the configured format and level.
func (c *Config) New(w io.Writer) (*zap.Logger, error) {
	format := c.Format
	if format == "" || format == FormatAuto {
		format = FormatLogfmt
		if isTerminal(w) {
			format = FormatConsole
		}
	}

	encoder, err := newEncoder(format)
	if err != nil {
		return nil, err
	}
	return zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(w)),
		c.Level,
	)), nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	config.EncodeDuration = func(d time.Duration, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(d.String())
	}

	switch format {
	case FormatConsole:
		return zapcore.NewConsoleEncoder(config), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(config), nil
	case FormatLogfmt:
		return zaplogfmt.NewEncoder(config), nil
	default:
		return nil, fmt.Errorf("unknown logging format: %s", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
