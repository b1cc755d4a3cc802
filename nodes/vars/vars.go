// Package vars provides the variable-store node pair: set snapshots the
// current payload under a name, get restores a snapshot into the payload.
// Snapshots are deep copies in both directions, so stored values never alias
// the live payload. This is the engine's designated isolation mechanism for
// fan-out branches that must not see each other's mutations.
package vars

import (
	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes"
)

// Kind names used to register the two node kinds.
const (
	KindSet = "vars.set"
	KindGet = "vars.get"
)

// Config names the variable slot.
type Config struct {
	Name string `mapstructure:"name"`
}

func init() {
	nodes.Register(KindSet, buildSet)
	nodes.Register(KindGet, buildGet)
}

func buildSet(eng *flowgraph.Engine, rawCfg map[string]any) (*flowgraph.Node, error) {
	var cfg Config
	if err := nodes.DecodeConfig(rawCfg, &cfg); err != nil {
		return nil, err
	}
	return NewSet(eng, cfg)
}

func buildGet(eng *flowgraph.Engine, rawCfg map[string]any) (*flowgraph.Node, error) {
	var cfg Config
	if err := nodes.DecodeConfig(rawCfg, &cfg); err != nil {
		return nil, err
	}
	return NewGet(eng, cfg)
}

// NewSet builds a node that deep-copies the current payload into
// Vars[cfg.Name] and forwards the envelope unchanged.
func NewSet(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Name == "" {
		return nil, flowgraph.ErrNameRequired
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: KindSet,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			snapshot, err := flowgraph.DeepCopy(msg.Payload)
			if err != nil {
				return err
			}
			msg.Vars[cfg.Name] = snapshot
			n.Next("", msg)
			return nil
		},
	})
}

// NewGet builds a node that overwrites the payload with a deep copy of
// Vars[cfg.Name] when the slot exists and leaves the payload untouched when it
// does not. It always forwards.
func NewGet(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Name == "" {
		return nil, flowgraph.ErrNameRequired
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: KindGet,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			if stored, ok := msg.Vars[cfg.Name]; ok {
				restored, err := flowgraph.DeepCopy(stored)
				if err != nil {
					return err
				}
				msg.Payload = restored
			}
			n.Next("", msg)
			return nil
		},
	})
}
