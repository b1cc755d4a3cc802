package nodes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes"
	_ "github.com/flowgraph/flowgraph/nodes/transform"
)

func newEngine(t *testing.T) *flowgraph.Engine {
	t.Helper()
	eng, err := flowgraph.New(&flowgraph.Config{}, flowgraph.NopLogger(), flowgraph.Dependencies{})
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func TestRegistryRegisterAndBuild(t *testing.T) {
	eng := newEngine(t)
	registry := nodes.NewRegistry()

	registry.Register("noop", func(eng *flowgraph.Engine, rawCfg map[string]any) (*flowgraph.Node, error) {
		return eng.NewNode(flowgraph.NodeConfig{
			Kind: "noop",
			Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error { return nil },
		})
	})

	require.True(t, registry.Has("noop"))
	assert.Contains(t, registry.Names(), "noop")

	node, err := registry.Build(eng, "noop", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, node.ID())
}

func TestRegistryUnknownKind(t *testing.T) {
	eng := newEngine(t)
	registry := nodes.NewRegistry()

	_, err := registry.Build(eng, "nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node kind")
}

func TestRegistryRequiresEngineAndKind(t *testing.T) {
	registry := nodes.NewRegistry()

	_, err := registry.Build(nil, "noop", nil)
	assert.ErrorIs(t, err, flowgraph.ErrEngineRequired)

	eng := newEngine(t)
	_, err = registry.Build(eng, "", nil)
	assert.ErrorIs(t, err, flowgraph.ErrKindRequired)
}

func TestDefaultRegistryBuildsRegisteredKinds(t *testing.T) {
	eng := newEngine(t)

	require.True(t, nodes.DefaultRegistry.Has("transform"))

	node, err := nodes.Build(eng, "transform", map[string]any{
		"rules": map[string]string{"out": "in"},
	})
	require.NoError(t, err)
	assert.Equal(t, "transform", node.Kind())
}

func TestDecodeConfigDurationStrings(t *testing.T) {
	var cfg struct {
		Duration time.Duration `mapstructure:"duration"`
		Name     string        `mapstructure:"name"`
	}

	err := nodes.DecodeConfig(map[string]any{
		"duration": "250ms",
		"name":     "snap",
	}, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Duration)
	assert.Equal(t, "snap", cfg.Name)
}
