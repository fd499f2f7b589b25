package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Init builds the global logger. Level is "debug", "info", "warn" or "error";
// anything else falls back to info.
func Init(level string) {
	once.Do(func() {
		log = build(level)
	})
}

func build(level string) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	lvl := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		lvl = parsed
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.NewAtomicLevelAt(lvl),
	)

	return zap.New(core, zap.AddCallerSkip(1)).Sugar()
}

func instance() *zap.SugaredLogger {
	if log == nil {
		Init("info")
	}
	return log
}

// Info logs a tagged message with optional key/value pairs.
func Info(msg string, args ...any) {
	instance().Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	instance().Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	instance().Errorw(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	instance().Debugw(msg, normalize(args)...)
}

// Sync flushes buffered log entries.
func Sync() {
	if log != nil {
		log.Sync()
	}
}

// normalize allows both logger.Error("Repo:Method", err) and
// logger.Error("Repo:Method", "error", err, "id", id) call shapes.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}
	return args
}
