package logger

import (
	"time"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type zapLogger struct {
	logZap *zap.SugaredLogger
	logger *zap.Logger // kept for Sync() on shutdown
}

func NewZapLogger(conf *config.Config) (*zapLogger, error) {
	logLevel, err := zap.ParseAtomicLevel(conf.Log.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	// Rotated general log
	stdLogWriter := &lumberjack.Logger{
		Filename:   conf.Log.Path,
		MaxSize:    conf.Log.MaxSize, // MB
		MaxBackups: conf.Log.MaxBackups,
		MaxAge:     conf.Log.MaxAge, // days
		Compress:   conf.Log.Compress,
	}

	// Rotated error-only log
	errLogWriter := &lumberjack.Logger{
		Filename:   conf.Log.ErrorPath,
		MaxSize:    conf.Log.MaxSize,
		MaxBackups: conf.Log.MaxBackups,
		MaxAge:     conf.Log.MaxAge,
		Compress:   conf.Log.Compress,
	}

	stdCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(stdLogWriter),
		logLevel,
	)

	errCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(errLogWriter),
		zap.ErrorLevel,
	)

	core := zapcore.NewTee(stdCore, errCore)

	logger := zap.New(core, zap.Development(), zap.AddCaller(), zap.AddCallerSkip(1))

	return &zapLogger{
		logZap: logger.Sugar(),
		logger: logger,
	}, nil
}

// RequestLog makes request log
func (logger *zapLogger) RequestLog(method string, path string) {
	logger.logZap.Infow("incoming request",
		"method", method,
		"path", path,
	)
}

// Info logs message at info level
func (logger *zapLogger) Info(mes string) {
	logger.logZap.Info(mes)
}

func (logger *zapLogger) Infof(str string, arg ...any) {
	logger.logZap.Infof(str, arg...)
}

// Error logs message at error level
func (logger *zapLogger) Error(mes string) {
	logger.logZap.Error(mes)
}

func (logger *zapLogger) Errorf(str string, arg ...any) {
	logger.logZap.Errorf(str, arg...)
}

// Warn logs message at warn level
func (logger *zapLogger) Warn(mes string) {
	logger.logZap.Warn(mes)
}

func (logger *zapLogger) Warnf(str string, arg ...any) {
	logger.logZap.Warnf(str, arg...)
}

// Debug logs message at debug level
func (logger *zapLogger) Debug(mes string) {
	logger.logZap.Debug(mes)
}

// Debugf logs formatted message at debug level
func (logger *zapLogger) Debugf(str string, arg ...any) {
	logger.logZap.Debugf(str, arg...)
}

// ResponseLog makes response log
func (logger *zapLogger) ResponseLog(status int, size int, duration time.Duration) {
	logger.logZap.Infow("Send response with",
		"status", status,
		"size", size,
		"time", duration.String(),
	)
}

// Close flushes buffered log entries
func (logger *zapLogger) Close() error {
	return logger.logger.Sync()
}
