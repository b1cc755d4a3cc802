// Package transform provides a node that replaces the payload with the result
// of a declarative, side-effect-free field mapping. It never touches the
// envelope's variable store.
package transform

import (
	"errors"
	"strings"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes"
)

// Kind is the name used to register this node kind.
const Kind = "transform"

// Config describes the mapping. Each rule maps an output field name to a
// dot-separated path into the current payload; rules whose path does not
// resolve produce no output field.
type Config struct {
	Rules map[string]string `mapstructure:"rules"`
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

// New builds a transform node on the supplied engine.
func New(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if len(cfg.Rules) == 0 {
		return nil, errors.New("transform: at least one mapping rule is required")
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: Kind,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			out := make(map[string]any, len(cfg.Rules))
			for field, path := range cfg.Rules {
				if value, ok := resolve(msg.Payload, path); ok {
					out[field] = value
				}
			}
			msg.Payload = out
			n.Next("", msg)
			return nil
		},
	})
}

// resolve walks a dot-separated path through nested maps.
func resolve(payload any, path string) (any, bool) {
	current := payload
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
