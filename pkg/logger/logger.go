package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	case FATAL:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel maps debug, info, warn, error and fatal (any case) to a level.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger is a leveled printf-style logger rendered by zerolog.
type Logger struct {
	mu  sync.RWMutex
	cfg Config
	zl  zerolog.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

type Config struct {
	Level      LogLevel
	Prefix     string
	Format     string // console or json
	Colorize   bool   // console only
	ShowCaller bool
	ShowTime   bool
	TimeFormat string
	Output     io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		Prefix:     "",
		Format:     FormatConsole,
		Colorize:   true,
		ShowCaller: false,
		ShowTime:   true,
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stdout,
	}
}

func New(cfg Config) *Logger {
	l := &Logger{}
	l.configure(cfg)
	return l
}

// GetLogger returns the process-wide logger. LOG_LEVEL and LOG_FORMAT are
// read on first use.
func GetLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
			if level, err := ParseLevel(envLevel); err == nil {
				cfg.Level = level
			}
		}
		if format := os.Getenv("LOG_FORMAT"); format != "" {
			cfg.Format = strings.ToLower(format)
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

// configure rebuilds the zerolog logger. Callers hold mu or own l exclusively.
func (l *Logger) configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "2006-01-02 15:04:05"
	}
	if cfg.Format == "" {
		cfg.Format = FormatConsole
	}

	var out io.Writer = cfg.Output
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			NoColor:    !cfg.Colorize,
			TimeFormat: cfg.TimeFormat,
			PartsExclude: func() []string {
				if cfg.ShowTime {
					return nil
				}
				return []string{zerolog.TimestampFieldName}
			}(),
		}
	}

	zctx := zerolog.New(out).Level(cfg.Level.zerolog()).With()
	if cfg.ShowTime {
		zctx = zctx.Timestamp()
	}
	if cfg.ShowCaller {
		// Skip log() and the exported wrapper.
		zctx = zctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 2)
	}
	if cfg.Prefix != "" {
		zctx = zctx.Str("component", cfg.Prefix)
	}

	l.cfg = cfg
	l.zl = zctx.Logger()
}

func (l *Logger) update(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cfg := l.cfg
	fn(&cfg)
	l.configure(cfg)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.update(func(c *Config) { c.Level = level })
}

func (l *Logger) SetOutput(w io.Writer) {
	l.update(func(c *Config) { c.Output = w })
}

func (l *Logger) SetColorize(colorize bool) {
	l.update(func(c *Config) { c.Colorize = colorize })
}

func (l *Logger) SetShowCaller(show bool) {
	l.update(func(c *Config) { c.ShowCaller = show })
}

func (l *Logger) SetFormat(format string) {
	l.update(func(c *Config) { c.Format = format })
}

// Level returns the current minimum level.
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg.Level
}

// Zerolog exposes the underlying logger for structured fields.
func (l *Logger) Zerolog() zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.zl
}

// With returns a child logger that adds key=value to every line.
func (l *Logger) With(key string, value any) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Logger{cfg: l.cfg, zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.RLock()
	zl := l.zl
	l.mu.RUnlock()

	var ev *zerolog.Event
	switch level {
	case DEBUG:
		ev = zl.Debug()
	case INFO:
		ev = zl.Info()
	case WARN:
		ev = zl.Warn()
	case ERROR:
		ev = zl.Error()
	case FATAL:
		// Exits the process after writing.
		ev = zl.Fatal()
	}
	if ev == nil {
		return
	}

	if len(args) > 0 {
		ev.Msgf(msg, args...)
	} else {
		ev.Msg(msg)
	}
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level
func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level
func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level
func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// Fatal logs a message at FATAL level and exits the program
func (l *Logger) Fatal(msg string, args ...any) {
	l.log(FATAL, msg, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(WARN, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(ERROR, format, args...)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.log(FATAL, format, args...)
}

// Package-level convenience functions using the default logger

func Debugf(format string, args ...any) {
	GetLogger().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	GetLogger().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	GetLogger().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	GetLogger().Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	GetLogger().Fatalf(format, args...)
}

// SetLevel sets the log level for the default logger
func SetLevel(level LogLevel) {
	GetLogger().SetLevel(level)
}

// SetOutput sets the output for the default logger
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

func SetFormat(format string) {
	GetLogger().SetFormat(format)
}
