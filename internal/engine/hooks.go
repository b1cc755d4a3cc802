package engine

import (
	loggingpkg "github.com/flowgraph/flowgraph/internal/engine/logging"
)

// EnterTrace is emitted when a node begins running its work.
type EnterTrace struct {
	NodeID        string
	Kind          string
	CorrelationID string
}

// FanOutTrace is emitted when a node forwards an envelope on a channel,
// including channels with zero registered targets.
type FanOutTrace struct {
	NodeID        string
	Kind          string
	Channel       string
	Targets       int
	CorrelationID string
}

// TraceHooks defines callbacks for the engine's three structured trace points:
// node entry, channel fan-out, and failure. All hooks are optional; nil hooks
// are simply not called. The actual sink behind a hook (console, log stream,
// tracing backend) is the caller's business.
type TraceHooks struct {
	OnNodeEnter func(EnterTrace)
	OnFanOut    func(FanOutTrace)
	OnFailure   func(FailureRecord)
}

// Merge combines two TraceHooks into one that calls both, h's hooks first.
func (h TraceHooks) Merge(other TraceHooks) TraceHooks {
	return TraceHooks{
		OnNodeEnter: chainEnterHooks(h.OnNodeEnter, other.OnNodeEnter),
		OnFanOut:    chainFanOutHooks(h.OnFanOut, other.OnFanOut),
		OnFailure:   chainFailureHooks(h.OnFailure, other.OnFailure),
	}
}

func chainEnterHooks(a, b func(EnterTrace)) func(EnterTrace) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(tr EnterTrace) {
		a(tr)
		b(tr)
	}
}

func chainFanOutHooks(a, b func(FanOutTrace)) func(FanOutTrace) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(tr FanOutTrace) {
		a(tr)
		b(tr)
	}
}

func chainFailureHooks(a, b func(FailureRecord)) func(FailureRecord) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(rec FailureRecord) {
		a(rec)
		b(rec)
	}
}

// LoggingHooks returns hooks that log every trace point through the supplied
// logger.
func LoggingHooks(logger loggingpkg.FlowLogger) TraceHooks {
	return TraceHooks{
		OnNodeEnter: func(tr EnterTrace) {
			logger.Debug("Node entered", loggingpkg.LogFields{
				"node_id":        tr.NodeID,
				"node_kind":      tr.Kind,
				"correlation_id": tr.CorrelationID,
			})
		},
		OnFanOut: func(tr FanOutTrace) {
			logger.Trace("Channel fan-out", loggingpkg.LogFields{
				"node_id":        tr.NodeID,
				"node_kind":      tr.Kind,
				"channel":        tr.Channel,
				"targets":        tr.Targets,
				"correlation_id": tr.CorrelationID,
			})
		},
		OnFailure: func(rec FailureRecord) {
			fields := loggingpkg.LogFields{}
			if rec.Node != nil {
				fields["node_id"] = rec.Node.ID()
				fields["node_kind"] = rec.Node.Kind()
			}
			if rec.Message != nil {
				fields["correlation_id"] = rec.Message.Context.CorrelationID
			}
			logger.Error("Node work failed", rec.Cause, fields)
		},
	}
}

// MetricsHooks returns hooks that count trace points on the supplied Metrics.
func MetricsHooks(m *Metrics) TraceHooks {
	if m == nil {
		return TraceHooks{}
	}
	return TraceHooks{
		OnNodeEnter: func(tr EnterTrace) {
			m.ObserveDispatch(tr.Kind)
		},
		OnFanOut: func(tr FanOutTrace) {
			m.ObserveFanOut(tr.Kind, tr.Channel, tr.Targets)
		},
		OnFailure: func(rec FailureRecord) {
			kind := ""
			if rec.Node != nil {
				kind = rec.Node.Kind()
			}
			m.ObserveFailure(kind)
		},
	}
}
