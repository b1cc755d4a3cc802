// Package merge provides a node that shallow-merges a stored variable onto the
// current payload, variable fields winning on key collision.
package merge

import (
	"fmt"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes"
)

// Kind is the name used to register this node kind.
const Kind = "merge"

// Config names the variable slot merged onto the payload.
type Config struct {
	Name string `mapstructure:"name"`
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

// New builds a merge node on the supplied engine. When Vars[cfg.Name] is
// absent the payload passes through unchanged; when present, both it and the
// payload must be map-shaped. Merged-in values are deep copies, so the payload
// never aliases the variable store.
func New(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Name == "" {
		return nil, flowgraph.ErrNameRequired
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: Kind,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			stored, ok := msg.Vars[cfg.Name]
			if !ok {
				n.Next("", msg)
				return nil
			}

			copied, err := flowgraph.DeepCopy(stored)
			if err != nil {
				return err
			}
			overlay, ok := copied.(map[string]any)
			if !ok {
				return fmt.Errorf("merge: variable %q is not map-shaped (%T)", cfg.Name, stored)
			}

			base, ok := msg.Payload.(map[string]any)
			if !ok {
				if msg.Payload != nil {
					return fmt.Errorf("merge: payload is not map-shaped (%T)", msg.Payload)
				}
				base = make(map[string]any, len(overlay))
			}

			for k, v := range overlay {
				base[k] = v
			}
			msg.Payload = base

			n.Next("", msg)
			return nil
		},
	})
}
