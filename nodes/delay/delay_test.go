package delay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes/delay"
)

func newEngine(t *testing.T) *flowgraph.Engine {
	t.Helper()
	eng, err := flowgraph.New(&flowgraph.Config{}, flowgraph.NopLogger(), flowgraph.Dependencies{})
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func TestDelayForwardsAfterDuration(t *testing.T) {
	eng := newEngine(t)

	node, err := delay.New(eng, delay.Config{Duration: 30 * time.Millisecond})
	require.NoError(t, err)

	arrived := make(chan *flowgraph.Envelope, 1)
	downstream, err := eng.NewNode(flowgraph.NodeConfig{
		Kind: "recorder",
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			arrived <- msg
			return nil
		},
	})
	require.NoError(t, err)
	node.Connect("", downstream)

	env := flowgraph.NewEnvelope(map[string]any{"v": float64(1)}, flowgraph.CallerInfo{})
	start := time.Now()
	node.Send(env)

	select {
	case got := <-arrived:
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
		assert.Same(t, env, got)
	case <-time.After(time.Second):
		t.Fatal("delayed envelope never arrived")
	}
}

func TestDelayPendingTimersDoNotBlockEachOther(t *testing.T) {
	eng := newEngine(t)

	node, err := delay.New(eng, delay.Config{Duration: 50 * time.Millisecond})
	require.NoError(t, err)

	arrived := make(chan struct{}, 2)
	downstream, err := eng.NewNode(flowgraph.NodeConfig{
		Kind: "recorder",
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			arrived <- struct{}{}
			return nil
		},
	})
	require.NoError(t, err)
	node.Connect("", downstream)

	start := time.Now()
	node.Send(flowgraph.NewEnvelope("a", flowgraph.CallerInfo{}))
	node.Send(flowgraph.NewEnvelope("b", flowgraph.CallerInfo{}))

	for i := 0; i < 2; i++ {
		select {
		case <-arrived:
		case <-time.After(time.Second):
			t.Fatal("delayed envelope never arrived")
		}
	}
	// Both timers run concurrently, so the total stays well under 2x.
	assert.Less(t, time.Since(start), 90*time.Millisecond)
}

func TestDelayConfigValidation(t *testing.T) {
	eng := newEngine(t)

	_, err := delay.New(eng, delay.Config{})
	require.Error(t, err)

	_, err = delay.New(eng, delay.Config{Duration: -time.Second})
	require.Error(t, err)

	_, err = delay.New(nil, delay.Config{Duration: time.Second})
	assert.ErrorIs(t, err, flowgraph.ErrEngineRequired)
}
