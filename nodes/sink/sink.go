// Package sink provides the terminal node: it invokes a completion callback
// on arrival and never forwards. A traversal that reaches a sink is the only
// one that produces a completion; failed traversals do not.
package sink

import (
	flowgraph "github.com/flowgraph/flowgraph"
)

// Kind labels sink nodes in traces and metrics. Sinks need a live callback,
// so they are not buildable from the registry.
const Kind = "sink"

// Config carries the completion callback.
type Config struct {
	Done flowgraph.CompletionFunc
}

// New builds a sink node on the supplied engine.
func New(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Done == nil {
		return nil, flowgraph.ErrCompletionRequired
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: Kind,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			cfg.Done(nil, msg)
			return nil
		},
	})
}
