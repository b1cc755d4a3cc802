package flowgraph

import (
	enginepkg "github.com/flowgraph/flowgraph/internal/engine"
	errspkg "github.com/flowgraph/flowgraph/internal/engine/errors"
	idspkg "github.com/flowgraph/flowgraph/internal/engine/ids"
	jsoncodec "github.com/flowgraph/flowgraph/internal/engine/jsoncodec"
	loggingpkg "github.com/flowgraph/flowgraph/internal/engine/logging"
)

type (
	Config       = enginepkg.Config
	Dependencies = enginepkg.Dependencies
	Engine       = enginepkg.Engine
	Scheduler    = enginepkg.Scheduler

	Envelope        = enginepkg.Envelope
	EnvelopeContext = enginepkg.EnvelopeContext
	CallerInfo      = enginepkg.CallerInfo

	Node       = enginepkg.Node
	NodeConfig = enginepkg.NodeConfig
	WorkFunc   = enginepkg.WorkFunc

	FailureRecord  = enginepkg.FailureRecord
	FailureFunc    = enginepkg.FailureFunc
	CompletionFunc = enginepkg.CompletionFunc

	TraceHooks  = enginepkg.TraceHooks
	EnterTrace  = enginepkg.EnterTrace
	FanOutTrace = enginepkg.FanOutTrace
	Metrics     = enginepkg.Metrics

	LogFields  = loggingpkg.LogFields
	FlowLogger = loggingpkg.FlowLogger

	ConfigValidationError = errspkg.ConfigValidationError
)

var (
	New            = enginepkg.New
	MustNew        = enginepkg.MustNew
	MustNode       = enginepkg.MustNode
	ValidateConfig = enginepkg.ValidateConfig

	NewEnvelope    = enginepkg.NewEnvelope
	TryNewEnvelope = enginepkg.TryNewEnvelope

	NewScheduler = enginepkg.NewScheduler
	NewMetrics   = enginepkg.NewMetrics

	LoggingHooks = enginepkg.LoggingHooks
	MetricsHooks = enginepkg.MetricsHooks

	NewSlogFlowLogger      = loggingpkg.NewSlogFlowLogger
	NewWatermillFlowLogger = loggingpkg.NewWatermillFlowLogger
	NewWatermillAdapter    = loggingpkg.NewWatermillAdapter
	NopLogger              = loggingpkg.Nop

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal
	Encode        = jsoncodec.Encode
	Decode        = jsoncodec.Decode
	DeepCopy      = jsoncodec.DeepCopy

	NewCorrelationID = idspkg.NewCorrelationID

	ErrEngineRequired     = errspkg.ErrEngineRequired
	ErrWorkRequired       = errspkg.ErrWorkRequired
	ErrTargetRequired     = errspkg.ErrTargetRequired
	ErrLoggerRequired     = errspkg.ErrLoggerRequired
	ErrConfigRequired     = errspkg.ErrConfigRequired
	ErrEnvelopeRequired   = errspkg.ErrEnvelopeRequired
	ErrNameRequired       = errspkg.ErrNameRequired
	ErrKindRequired       = errspkg.ErrKindRequired
	ErrCompletionRequired = errspkg.ErrCompletionRequired
	ErrPublisherRequired  = errspkg.ErrPublisherRequired
	ErrTopicRequired      = errspkg.ErrTopicRequired
)

// DefaultChannel is the channel used when an API call omits the channel name.
const DefaultChannel = enginepkg.DefaultChannel
