package logging

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
)

// LogFields represents structured logging key/value pairs used by flowgraph.
type LogFields map[string]any

// FlowLogger is the minimal logging contract required by the engine. It maps
// directly onto Watermill's logging needs so applications can adapt their
// existing loggers without depending on slog.
type FlowLogger interface {
	With(fields LogFields) FlowLogger
	Debug(msg string, fields LogFields)
	Info(msg string, fields LogFields)
	Error(msg string, err error, fields LogFields)
	Trace(msg string, fields LogFields)
}

var logLevelMapping = map[slog.Level]slog.Level{
	slog.LevelDebug: slog.LevelDebug,
	slog.LevelInfo:  slog.LevelInfo,
	slog.LevelWarn:  slog.LevelWarn,
	slog.LevelError: slog.LevelError,
}

// NewSlogFlowLogger wraps a slog.Logger so it satisfies the FlowLogger
// interface.
func NewSlogFlowLogger(log *slog.Logger) FlowLogger {
	if log == nil {
		panic("flowgraph: slog logger cannot be nil")
	}
	return NewWatermillFlowLogger(watermill.NewSlogLoggerWithLevelMapping(log, logLevelMapping))
}

// NewWatermillFlowLogger wraps an existing Watermill LoggerAdapter so it can
// be supplied to the engine.
func NewWatermillFlowLogger(logger watermill.LoggerAdapter) FlowLogger {
	if logger == nil {
		panic("flowgraph: watermill logger cannot be nil")
	}
	return &watermillFlowLogger{inner: logger}
}

type watermillFlowLogger struct {
	inner watermill.LoggerAdapter
}

func (w *watermillFlowLogger) With(fields LogFields) FlowLogger {
	return &watermillFlowLogger{inner: w.inner.With(toWatermillFields(fields))}
}

func (w *watermillFlowLogger) Debug(msg string, fields LogFields) {
	w.inner.Debug(msg, toWatermillFields(fields))
}

func (w *watermillFlowLogger) Info(msg string, fields LogFields) {
	w.inner.Info(msg, toWatermillFields(fields))
}

func (w *watermillFlowLogger) Error(msg string, err error, fields LogFields) {
	w.inner.Error(msg, err, toWatermillFields(fields))
}

func (w *watermillFlowLogger) Trace(msg string, fields LogFields) {
	w.inner.Trace(msg, toWatermillFields(fields))
}

type flowLoggerAdapter struct {
	base FlowLogger
}

// NewWatermillAdapter converts a FlowLogger back into a Watermill
// LoggerAdapter so collaborators built on Watermill (for example the publish
// node's Pub/Sub) can reuse the same logger.
func NewWatermillAdapter(log FlowLogger) watermill.LoggerAdapter {
	if log == nil {
		panic("flowgraph: FlowLogger cannot be nil")
	}
	return &flowLoggerAdapter{base: log}
}

func (a *flowLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.base.Error(msg, err, fromWatermillFields(fields))
}

func (a *flowLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.base.Info(msg, fromWatermillFields(fields))
}

func (a *flowLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.base.Debug(msg, fromWatermillFields(fields))
}

func (a *flowLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.base.Trace(msg, fromWatermillFields(fields))
}

func (a *flowLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &flowLoggerAdapter{base: a.base.With(fromWatermillFields(fields))}
}

// Nop returns a FlowLogger that discards everything.
func Nop() FlowLogger {
	return &watermillFlowLogger{inner: watermill.NopLogger{}}
}

func toWatermillFields(fields LogFields) watermill.LogFields {
	if len(fields) == 0 {
		return nil
	}
	return watermill.LogFields(fields)
}

func fromWatermillFields(fields watermill.LogFields) LogFields {
	if len(fields) == 0 {
		return nil
	}
	return LogFields(fields)
}
