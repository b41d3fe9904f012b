// Package logger provides structured event logging for the API. Events
// are short snake_case names with a flat field map, e.g.:
//
//	logger.Info("expense_created", map[string]interface{}{"expense_id": id})
//
// Environment variables:
//
//	LOG_LEVEL:  debug, info, warn, error (default: info)
//	LOG_FORMAT: text (tint, for terminals) or json (default: text)
package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Init configures the default slog logger. Safe to call more than once.
func Init() {
	level := levelFromEnv()

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	slog.SetDefault(slog.New(handler))
}

func Info(event string, fields map[string]interface{}) {
	slog.Info(event, attrs(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	slog.Warn(event, attrs(fields)...)
}

func Error(event string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	slog.Error(event, args...)
}

func InfoWithUser(userID, event string, fields map[string]interface{}) {
	slog.Info(event, append(attrs(fields), "user_id", userID)...)
}

func WarnWithUser(userID, event string, fields map[string]interface{}) {
	slog.Warn(event, append(attrs(fields), "user_id", userID)...)
}

func attrs(fields map[string]interface{}) []any {
	args := make([]any, 0, 2*len(fields)+2)
	for key, value := range fields {
		args = append(args, key, value)
	}
	return args
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
