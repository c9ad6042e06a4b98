// Package fsmlog logs fsm transitions through log/slog.
package fsmlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/enetx/fsm/v2"
)

const (
	MsgCommitted = "transition committed"
	MsgRejected  = "transition rejected"
)

// TransitionHook returns an fsm hook that logs every committed transition at debug level.
// attrs are added to every record, typically to name the machine.
func TransitionHook[S comparable](logger *slog.Logger, attrs ...any) fsm.TransitionHook[S] {
	logger = orDefault(logger).With(attrs...)

	return func(from, to S) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, MsgCommitted,
			slog.Any("from", from),
			slog.Any("to", to),
		)
	}
}

// RejectHook returns an fsm hook that logs every rejected transition at warn level.
func RejectHook[S comparable](logger *slog.Logger, attrs ...any) fsm.RejectHook[S] {
	logger = orDefault(logger).With(attrs...)

	return func(err *fsm.ErrIllegalTransition[S]) {
		logger.LogAttrs(context.Background(), slog.LevelWarn, MsgRejected,
			slog.Any("from", err.From),
			slog.Any("to", err.To),
		)
	}
}

// Attach registers both logging hooks on m and returns it.
func Attach[S comparable](m *fsm.Machine[S], logger *slog.Logger, attrs ...any) *fsm.Machine[S] {
	return m.
		OnTransition(TransitionHook[S](logger, attrs...)).
		OnReject(RejectHook[S](logger, attrs...))
}

// AttachSync is Attach for a SyncMachine.
func AttachSync[S comparable](sm *fsm.SyncMachine[S], logger *slog.Logger, attrs ...any) *fsm.SyncMachine[S] {
	return sm.
		OnTransition(TransitionHook[S](logger, attrs...)).
		OnReject(RejectHook[S](logger, attrs...))
}

// ParseLevel maps a level name to a slog.Level; unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewTextHandler configures a human-readable handler with the provided writer and log level.
func NewTextHandler(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	lvl := log.InfoLevel
	switch ParseLevel(level) {
	case slog.LevelDebug:
		lvl = log.DebugLevel
	case slog.LevelWarn:
		lvl = log.WarnLevel
	case slog.LevelError:
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: lvl == log.DebugLevel,
		Level:           lvl,
		Prefix:          "fsm",
	})
}

// NewJSONHandler configures a JSON handler with the provided writer and log level.
func NewJSONHandler(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: ParseLevel(level)})
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}

	return logger
}
