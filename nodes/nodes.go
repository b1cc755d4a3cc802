// Package nodes hosts the registry of concrete node kinds. Kind packages
// register a builder in init(), so importing a kind package (possibly blank)
// makes it buildable by name:
//
//	import _ "github.com/flowgraph/flowgraph/nodes/transform"
//
//	node, err := nodes.Build(eng, "transform", map[string]any{
//		"rules": map[string]string{"out": "in.path"},
//	})
//
// Kinds that need live collaborators (completion callbacks, publishers) only
// expose typed constructors and do not self-register.
package nodes

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"

	flowgraph "github.com/flowgraph/flowgraph"
)

// Builder constructs a node of one kind from a raw configuration map.
type Builder func(eng *flowgraph.Engine, rawCfg map[string]any) (*flowgraph.Node, error)

// Registry maintains a mapping of node kind names to their builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// DefaultRegistry is the global node kind registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a node builder under the given kind name.
func (r *Registry) Register(kind string, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[kind] = builder
}

// Build constructs a node of the named kind on the supplied engine.
func (r *Registry) Build(eng *flowgraph.Engine, kind string, rawCfg map[string]any) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if kind == "" {
		return nil, flowgraph.ErrKindRequired
	}

	r.mu.RLock()
	builder, ok := r.builders[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown node kind: %q (registered: %v)", kind, r.Names())
	}

	return builder(eng, rawCfg)
}

// Names returns the registered kind names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	return names
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[kind]
	return ok
}

// Register adds a node builder to the default registry.
func Register(kind string, builder Builder) {
	DefaultRegistry.Register(kind, builder)
}

// Build constructs a node using the default registry.
func Build(eng *flowgraph.Engine, kind string, rawCfg map[string]any) (*flowgraph.Node, error) {
	return DefaultRegistry.Build(eng, kind, rawCfg)
}

// DecodeConfig decodes a raw configuration map into a typed kind config.
// Duration fields accept Go duration strings ("250ms", "10s").
func DecodeConfig(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
