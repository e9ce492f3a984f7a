package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOptions struct {
	Key  string
	Data interface{}
}

// Logger is a no-op until InitializeLogger runs so packages can log from tests.
var Logger = zap.NewNop()

func InitializeLogger() {
	var cfg zap.Config
	if os.Getenv("GIN_MODE") == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	Logger = l
}

// This logs info level messages.
func Info(msg string, payload ...LoggerOptions) {
	Logger.Info(msg, fields(payload)...)
}

// This logs error messages.
// describe the incident in msg and pass the error through logger options
// with key error
func Error(msg string, payload ...LoggerOptions) {
	Logger.Error(msg, fields(payload)...)
}

// This logs warning messages.
func Warning(msg string, payload ...LoggerOptions) {
	Logger.Warn(msg, fields(payload)...)
}

func Sync() {
	_ = Logger.Sync()
}

func fields(payload []LoggerOptions) []zapcore.Field {
	zapFields := []zapcore.Field{}
	for _, data := range payload {
		if err, ok := data.Data.(error); ok {
			zapFields = append(zapFields, zap.NamedError(data.Key, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(data.Key, data.Data))
	}
	return zapFields
}
