package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	errspkg "github.com/flowgraph/flowgraph/internal/engine/errors"
	loggingpkg "github.com/flowgraph/flowgraph/internal/engine/logging"
)

const tracerName = "flowgraph-engine-tracer"

// Config groups the engine-level settings. The zero value is a valid
// configuration: no metrics, no tracing, logging only.
type Config struct {
	// MetricsEnabled registers Prometheus counters for dispatches, fan-outs,
	// deferrals, and failures.
	MetricsEnabled bool
	// MetricsNamespace prefixes the counter names. Defaults to "flowgraph".
	MetricsNamespace string

	// TracingEnabled wraps every work execution in an OpenTelemetry span
	// carrying node identity and the envelope's correlation ID.
	TracingEnabled bool
}

// Validate checks the configuration. Returns an error describing every
// problem found; assembly must fail fast, never mid-traversal.
func (c *Config) Validate() error {
	var errs []error

	if strings.ContainsAny(c.MetricsNamespace, " \t\n") {
		errs = append(errs, errors.New("metrics: namespace must not contain whitespace"))
	}

	return errors.Join(errs...)
}

// ValidateConfig is a convenience wrapper that also rejects a nil config.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errspkg.ErrConfigRequired
	}
	return c.Validate()
}

// Dependencies holds the optional collaborators of an Engine. Leave fields
// nil/empty to take the defaults.
type Dependencies struct {
	// Hooks are appended after the engine's built-in logging (and, when
	// enabled, metrics) hooks.
	Hooks []TraceHooks

	// OnFailure is the engine-wide failure handler, invoked for nodes built
	// without their own failure sink. Defaults to logging the record at
	// error level.
	OnFailure FailureFunc

	// Registerer receives the Prometheus counters when metrics are enabled.
	// Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Engine hosts the scheduler, trace hooks, metrics, and the process-wide
// failure handler shared by the nodes it creates.
type Engine struct {
	Conf   *Config
	Logger loggingpkg.FlowLogger

	scheduler *Scheduler
	hooks     TraceHooks
	metrics   *Metrics
	onFailure FailureFunc

	tracingEnabled bool
	baseCtx        context.Context
}

// New validates the configuration and builds an Engine. Create nodes on the
// returned engine, wire them with Connect, then dispatch with Send or Post.
func New(conf *Config, logger loggingpkg.FlowLogger, deps Dependencies) (*Engine, error) {
	if conf == nil {
		return nil, errspkg.NewConfigValidationError(errspkg.ErrConfigRequired)
	}
	if logger == nil {
		return nil, errspkg.NewConfigValidationError(errspkg.ErrLoggerRequired)
	}
	if err := conf.Validate(); err != nil {
		return nil, errspkg.NewConfigValidationError(err)
	}

	e := &Engine{
		Conf:           conf,
		Logger:         logger,
		scheduler:      NewScheduler(),
		tracingEnabled: conf.TracingEnabled,
		baseCtx:        context.Background(),
	}

	hooks := LoggingHooks(logger)
	if conf.MetricsEnabled {
		e.metrics = NewMetrics(conf.MetricsNamespace, deps.Registerer)
		hooks = hooks.Merge(MetricsHooks(e.metrics))
	}
	for _, h := range deps.Hooks {
		hooks = hooks.Merge(h)
	}
	e.hooks = hooks

	if deps.OnFailure != nil {
		e.onFailure = deps.OnFailure
	} else {
		e.onFailure = func(rec FailureRecord) {
			// Already logged by the failure trace hook; nothing else to do
			// for a node without its own sink.
		}
	}

	return e, nil
}

// MustNew is New, panicking on error.
func MustNew(conf *Config, logger loggingpkg.FlowLogger, deps Dependencies) *Engine {
	e, err := New(conf, logger, deps)
	if err != nil {
		panic(err)
	}
	return e
}

// NewNode builds a node bound to this engine. Missing work is a configuration
// error reported here, at assembly time.
func (e *Engine) NewNode(cfg NodeConfig) (*Node, error) {
	if cfg.Work == nil {
		return nil, errspkg.NewConfigValidationError(errspkg.ErrWorkRequired)
	}

	return &Node{
		id:        newNodeID(),
		kind:      cfg.Kind,
		work:      cfg.Work,
		channels:  make(map[string][]*Node),
		onFailure: cfg.OnFailure,
		engine:    e,
	}, nil
}

// MustNode is NewNode, panicking on error. Convenient during graph assembly
// where a bad node definition should stop the process.
func (e *Engine) MustNode(cfg NodeConfig) *Node {
	n, err := e.NewNode(cfg)
	if err != nil {
		panic(err)
	}
	return n
}

// MustNode wraps a node constructor result, panicking on error. It keeps
// assembly code linear when wiring prebuilt node kinds.
func MustNode(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

// Scheduler exposes the engine's cooperative scheduler for timer-based nodes
// and for callers that need to synchronize with deferred work.
func (e *Engine) Scheduler() *Scheduler {
	return e.scheduler
}

// Close stops the scheduler after draining queued work. Envelopes already
// dispatched synchronously are unaffected.
func (e *Engine) Close() {
	e.scheduler.Close()
}

func (e *Engine) traceEnter(tr EnterTrace) {
	if e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(tr)
	}
}

func (e *Engine) traceFanOut(tr FanOutTrace) {
	if e.hooks.OnFanOut != nil {
		e.hooks.OnFanOut(tr)
	}
}

func (e *Engine) traceFailure(rec FailureRecord) {
	if e.hooks.OnFailure != nil {
		e.hooks.OnFailure(rec)
	}
}

func (e *Engine) observeDeferred() {
	if e.metrics != nil {
		e.metrics.ObserveDeferred()
	}
}
