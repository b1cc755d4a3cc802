package errors

import sterrors "errors"

var (
	ErrEngineRequired     = sterrors.New("flowgraph: engine is required")
	ErrWorkRequired       = sterrors.New("flowgraph: work function is required")
	ErrTargetRequired     = sterrors.New("flowgraph: target node is required")
	ErrLoggerRequired     = sterrors.New("flowgraph: logger is required")
	ErrConfigRequired     = sterrors.New("flowgraph: configuration is required")
	ErrEnvelopeRequired   = sterrors.New("flowgraph: envelope is required")
	ErrNameRequired       = sterrors.New("flowgraph: name is required")
	ErrKindRequired       = sterrors.New("flowgraph: node kind is required")
	ErrCompletionRequired = sterrors.New("flowgraph: completion callback is required")
	ErrPublisherRequired  = sterrors.New("flowgraph: publisher is required")
	ErrTopicRequired      = sterrors.New("flowgraph: topic is required")
)
