package config

import (
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SupervisorLogger satisfies oversight.Logger.
type SupervisorLogger struct {
	*zerolog.Logger
}

func (l *SupervisorLogger) Printf(format string, v ...interface{}) {
	l.Logger.Debug().Str("lib", "oversight").Msgf(format, v...)
}
func (l *SupervisorLogger) Println(v ...interface{}) {
	l.Logger.Debug().Str("lib", "oversight").Msg(fmt.Sprint(v...))
}

// RetryableLogger satisfies retryablehttp.LeveledLogger.
type RetryableLogger struct {
	zerolog.Logger
}

func (l RetryableLogger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error().Fields(keysAndValues).Msg(msg)
}
func (l RetryableLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug().Fields(keysAndValues).Msg(msg)
}
func (l RetryableLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Trace().Fields(keysAndValues).Msg(msg)
}
func (l RetryableLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn().Fields(keysAndValues).Msg(msg)
}

// LoggerConfig is read from the environment before flags are parsed.
type LoggerConfig struct {
	ConsoleLoggingEnabled bool
	DebugModeEnabled      bool

	// The fields below only apply with FileLoggingEnabled.
	FileLoggingEnabled bool
	Directory          string
	Filename           string
	MaxSize            int // megabytes
	MaxBackups         int
	MaxAge             int // days
}

func buildLoggerConfig(debugModeEnabled bool) (*LoggerConfig, error) {
	conf := LoggerConfig{DebugModeEnabled: debugModeEnabled}

	if v, err := GetenvBool("CONSOLE_LOGGING_ENABLED"); err != nil {
		return nil, err
	} else if v != nil {
		conf.ConsoleLoggingEnabled = *v
	}

	if v, err := GetenvBool("FILE_LOGGING_ENABLED"); err != nil {
		return nil, err
	} else if v == nil || !*v {
		return &conf, nil
	}
	conf.FileLoggingEnabled = true
	conf.Directory = getenvStrOr("LOGS_DIRECTORY", "logs")
	conf.Filename = getenvStrOr("LOGS_FILE_NAME", "staffdesk.log")

	for key, field := range map[string]*int{
		"LOGS_MAX_SIZE":    &conf.MaxSize,
		"LOGS_MAX_BACKUPS": &conf.MaxBackups,
		"LOGS_MAX_AGE":     &conf.MaxAge,
	} {
		v, err := GetenvInt(key)
		if err != nil {
			return nil, err
		} else if v != nil {
			*field = *v
		} else {
			*field = 10
		}
	}

	return &conf, nil
}

func getenvStrOr(key, fallback string) string {
	if v := GetenvStr(key); v != "" {
		return v
	}
	return fallback
}

// ConfigureLogger exits the process if the environment is invalid.
func ConfigureLogger(debugModeEnabled bool) *zerolog.Logger {
	conf, err := buildLoggerConfig(debugModeEnabled)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid logging environment")
	}

	var out io.Writer = os.Stderr
	if conf.ConsoleLoggingEnabled {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	if conf.FileLoggingEnabled {
		out = zerolog.MultiLevelWriter(out, newRollingFile(conf))
	}

	level := zerolog.InfoLevel
	if debugModeEnabled {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(out).With().Timestamp().Logger()
	logger.Debug().Interface("config", conf).Msg("Configured logging")

	return &logger
}

func newRollingFile(conf *LoggerConfig) io.Writer {
	if err := os.MkdirAll(conf.Directory, 0o744); err != nil {
		log.Fatal().Err(err).Str("path", conf.Directory).Msg("Cannot create log directory")
	}

	return &lumberjack.Logger{
		Filename:   path.Join(conf.Directory, conf.Filename),
		MaxSize:    conf.MaxSize,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAge,
	}
}
