package logger

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the single logging value threaded through the diagram, the
// routing graph and the experiment runner. A nil *ZapLogger is valid and
// discards everything.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
	Logs   []string
}

type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Buffer keeps every record in memory so the viewer can show it.
	Buffer bool
	// Stderr mirrors every record to os.Stderr.
	Stderr bool
	// Out overrides os.Stderr when Stderr is set.
	Out io.Writer
}

func New() *ZapLogger {
	return NewWithOptions(Options{Level: "debug", Buffer: true})
}

func NewWithOptions(o Options) *ZapLogger {
	logBuf := &bytes.Buffer{}
	level := ParseLevel(o.Level)

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	var cores []zapcore.Core
	if o.Buffer {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(logBuf), level))
	}
	if o.Stderr {
		out := o.Out
		if out == nil {
			out = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(out), level))
	}
	if len(cores) == 0 {
		return Nop()
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &ZapLogger{
		log:    logger,
		logBuf: logBuf,
	}
}

// Nop returns a logger that drops all records.
func Nop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop(), logBuf: &bytes.Buffer{}}
}

func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiRe = regexp.MustCompile(`\033\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiRe.FindAllStringIndex(input, -1) {
		start := match[0]
		end := match[1]

		if start > lastIndex {
			result.WriteString(escapeHTML(input[lastIndex:start]))
		}

		colorCode := input[start+2 : end-1]
		if color, ok := colorMap[colorCode]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if colorCode == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(escapeHTML(input[lastIndex:]))
	}
	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")

	return result.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// UpdateLogs renders the buffered records into Logs as HTML.
func (z *ZapLogger) UpdateLogs() {
	if z == nil {
		return
	}
	z.Logs = []string{ansiToHTML(z.logBuf.String())}
}

func (z *ZapLogger) ClearLogs() {
	if z == nil {
		return
	}
	z.logBuf.Reset()
	z.Logs = nil
}

// Buffered returns the raw buffered records.
func (z *ZapLogger) Buffered() string {
	if z == nil {
		return ""
	}
	return z.logBuf.String()
}

// With returns a child logger sharing the same sinks.
func (z *ZapLogger) With(fields ...zap.Field) *ZapLogger {
	if z == nil {
		return nil
	}
	return &ZapLogger{log: z.log.With(fields...), logBuf: z.logBuf}
}

func (z *ZapLogger) Enabled(level zapcore.Level) bool {
	if z == nil {
		return false
	}
	return z.log.Core().Enabled(level)
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		return
	}
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	if z == nil {
		os.Exit(1)
	}
	z.log.Fatal(wrappedMsg, fields...)
}

func (z *ZapLogger) Sync() error {
	if z == nil {
		return nil
	}
	return z.log.Sync()
}
