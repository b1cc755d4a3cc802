// Package delay provides a node that forwards the envelope, payload unchanged,
// after a fixed duration. Each invocation schedules exactly one timer on the
// engine's scheduler; any number of timers may be pending at once without
// blocking other in-flight envelopes.
package delay

import (
	"errors"
	"time"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes"
)

// Kind is the name used to register this node kind.
const Kind = "delay"

// Config holds the fixed delay duration.
type Config struct {
	Duration time.Duration `mapstructure:"duration"`
}

func init() {
	nodes.Register(Kind, build)
}

func build(eng *flowgraph.Engine, rawCfg map[string]any) (*flowgraph.Node, error) {
	var cfg Config
	if err := nodes.DecodeConfig(rawCfg, &cfg); err != nil {
		return nil, err
	}
	return New(eng, cfg)
}

// New builds a delay node on the supplied engine.
func New(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Duration <= 0 {
		return nil, errors.New("delay: duration must be positive")
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: Kind,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			n.Engine().Scheduler().After(cfg.Duration, func() {
				n.Next("", msg)
			})
			return nil
		},
	})
}
