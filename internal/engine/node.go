package engine

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	errspkg "github.com/flowgraph/flowgraph/internal/engine/errors"
	idspkg "github.com/flowgraph/flowgraph/internal/engine/ids"
	loggingpkg "github.com/flowgraph/flowgraph/internal/engine/logging"
)

// DefaultChannel is the channel used when an API call omits the channel name.
const DefaultChannel = "default"

// WorkFunc is the single polymorphic capability of a node. It receives the
// node itself so forwarding (n.Next) and diagnostics resolve to the executing
// node. A non-nil error ends the branch and is delivered to the failure sink;
// it is never re-raised to the caller of Send or Post.
type WorkFunc func(n *Node, msg *Envelope) error

// FailureRecord is the structured error handed to a failure sink. It is
// delivered exactly once per failed work execution.
type FailureRecord struct {
	Node    *Node
	Message *Envelope
	Cause   error
}

// FailureFunc consumes failure records.
type FailureFunc func(FailureRecord)

// CompletionFunc is the terminal callback shape used by sink-style nodes.
type CompletionFunc func(err error, msg *Envelope)

// NodeConfig describes a node at assembly time. Work is required; everything
// else is optional.
type NodeConfig struct {
	// Kind labels the node's behavior for diagnostics and metrics, for
	// example "transform" or "delay". Never used for routing.
	Kind string

	Work WorkFunc

	// OnFailure receives this node's failure records. When nil, records
	// escalate to the engine-wide failure handler.
	OnFailure FailureFunc
}

// Node is a processing unit with one work function and a table of named
// outbound channels. Nodes are created at assembly time and their wiring is
// expected to be fixed before any envelope is dispatched; Connect is not
// synchronized against in-flight traversals.
type Node struct {
	id   string
	kind string

	work      WorkFunc
	channels  map[string][]*Node
	onFailure FailureFunc

	engine *Engine
}

// ID returns the node's unique diagnostic identifier.
func (n *Node) ID() string { return n.id }

// Engine returns the engine the node is bound to. Node kinds use it to reach
// the scheduler and the logger.
func (n *Node) Engine() *Engine { return n.engine }

// Kind returns the node's behavior label, possibly empty.
func (n *Node) Kind() string { return n.kind }

// Connect appends target to the ordered list for the named channel, creating
// the list if absent. An empty channel name means DefaultChannel. There is no
// deduplication: connecting the same target twice registers it twice, and
// fan-out will invoke it twice.
func (n *Node) Connect(channel string, target *Node) {
	if target == nil {
		panic(errspkg.ErrTargetRequired)
	}
	if channel == "" {
		channel = DefaultChannel
	}
	n.channels[channel] = append(n.channels[channel], target)
}

// Next hands msg to every target registered under the named channel,
// synchronously and in registration order. The same envelope reference goes to
// every target; nothing is cloned, so sibling branches share mutable state. A
// channel with no targets is a silent no-op apart from the fan-out trace.
func (n *Node) Next(channel string, msg *Envelope) {
	if channel == "" {
		channel = DefaultChannel
	}
	targets := n.channels[channel]

	n.engine.traceFanOut(FanOutTrace{
		NodeID:        n.id,
		Kind:          n.kind,
		Channel:       channel,
		Targets:       len(targets),
		CorrelationID: correlationID(msg),
	})

	for _, target := range targets {
		target.Send(msg)
	}
}

// Send runs the node's work synchronously in the caller's stack frame. A work
// error, or a recovered work panic, is converted into a FailureRecord and
// delivered exactly once to the node's failure sink; it never propagates past
// this node, and this branch of the traversal ends there.
func (n *Node) Send(msg *Envelope) {
	n.engine.traceEnter(EnterTrace{
		NodeID:        n.id,
		Kind:          n.kind,
		CorrelationID: correlationID(msg),
	})

	if err := n.runWork(msg); err != nil {
		n.fail(msg, err)
	}
}

// Post schedules Send on the engine's scheduler and returns immediately. Work
// runs on a later loop tick, bounding stack depth on long chains and letting
// independent in-flight envelopes interleave.
func (n *Node) Post(msg *Envelope) {
	n.engine.observeDeferred()
	n.engine.scheduler.Defer(func() {
		n.Send(msg)
	})
}

func (n *Node) runWork(msg *Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("work panicked: %v", r)
		}
	}()

	if !n.engine.tracingEnabled {
		return n.work(n, msg)
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(n.engine.baseCtx, "ProcessEnvelope")
	defer span.End()
	_ = ctx

	span.SetAttributes(
		attribute.String("node.id", n.id),
		attribute.String("node.kind", n.kind),
		attribute.String("envelope.correlation_id", correlationID(msg)),
	)
	return n.work(n, msg)
}

// fail is the single delivery point for failure records.
func (n *Node) fail(msg *Envelope, cause error) {
	rec := FailureRecord{Node: n, Message: msg, Cause: cause}

	n.engine.traceFailure(rec)

	sink := n.onFailure
	if sink == nil {
		sink = n.engine.onFailure
	}
	n.deliver(sink, rec)
}

// deliver invokes the sink, containing any panic it raises; a throwing sink
// must not take down unrelated traversals.
func (n *Node) deliver(sink FailureFunc, rec FailureRecord) {
	defer func() {
		if r := recover(); r != nil {
			n.engine.Logger.Error("failure sink panicked", fmt.Errorf("%v", r), loggingpkg.LogFields{
				"node_id":        n.id,
				"node_kind":      n.kind,
				"correlation_id": correlationID(rec.Message),
			})
		}
	}()
	sink(rec)
}

func correlationID(msg *Envelope) string {
	if msg == nil {
		return ""
	}
	return msg.Context.CorrelationID
}

func newNodeID() string {
	return idspkg.NewNodeID()
}
