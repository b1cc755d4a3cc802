package flowgraph_test

import (
	"reflect"
	"testing"
	"time"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes/delay"
	"github.com/flowgraph/flowgraph/nodes/sink"
	"github.com/flowgraph/flowgraph/nodes/vars"
)

// TestPipelineEndToEnd assembles a complete graph out of the shipped node
// kinds and custom work functions, then runs one envelope through it:
//
//	entry -> increment x9 -> vars.set -> delay(10ms) -> vars.get -> sink
//
// The completion fires only after the delay, carries the incremented payload
// restored from the snapshot, and the restored value does not alias the
// variable store.
func TestPipelineEndToEnd(t *testing.T) {
	eng, err := flowgraph.New(&flowgraph.Config{}, flowgraph.NopLogger(), flowgraph.Dependencies{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eng.Close()

	entry, err := eng.NewNode(flowgraph.NodeConfig{
		Kind: "entry",
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			n.Next("", msg)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("entry: %v", err)
	}

	prev := entry
	for i := 0; i < 9; i++ {
		inc, err := eng.NewNode(flowgraph.NodeConfig{
			Kind: "increment",
			Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
				payload := msg.Payload.(map[string]any)
				payload["v"] = payload["v"].(float64) + 1
				n.Next("", msg)
				return nil
			},
		})
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		prev.Connect("", inc)
		prev = inc
	}

	set, err := vars.NewSet(eng, vars.Config{Name: "snap"})
	if err != nil {
		t.Fatalf("vars.set: %v", err)
	}
	prev.Connect("", set)

	pause, err := delay.New(eng, delay.Config{Duration: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("delay: %v", err)
	}
	set.Connect("", pause)

	get, err := vars.NewGet(eng, vars.Config{Name: "snap"})
	if err != nil {
		t.Fatalf("vars.get: %v", err)
	}
	pause.Connect("", get)

	done := make(chan *flowgraph.Envelope, 1)
	end, err := sink.New(eng, sink.Config{
		Done: func(err error, msg *flowgraph.Envelope) {
			if err != nil {
				t.Errorf("completion error: %v", err)
			}
			done <- msg
		},
	})
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	get.Connect("", end)

	env := flowgraph.NewEnvelope(map[string]any{"v": float64(1)}, flowgraph.CallerInfo{
		User:   "alice",
		System: "pipeline-test",
	})
	start := time.Now()
	entry.Send(env)

	var completed *flowgraph.Envelope
	select {
	case completed = <-done:
	case <-time.After(time.Second):
		t.Fatal("completion never fired")
	}

	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("completed after %v, want at least 10ms", elapsed)
	}

	payload, ok := completed.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload has type %T, want map", completed.Payload)
	}
	if payload["v"] != float64(10) {
		t.Fatalf("payload v = %v, want 10", payload["v"])
	}

	snap, ok := completed.Vars["snap"].(map[string]any)
	if !ok {
		t.Fatalf("snapshot missing from vars")
	}
	if !reflect.DeepEqual(snap, payload) {
		t.Fatalf("restored payload %v differs from snapshot %v", payload, snap)
	}
	if reflect.ValueOf(snap).Pointer() == reflect.ValueOf(payload).Pointer() {
		t.Fatal("restored payload aliases the stored snapshot")
	}

	if !reflect.DeepEqual(completed.OriginalPayload, map[string]any{"v": float64(1)}) {
		t.Fatalf("original payload mutated: %v", completed.OriginalPayload)
	}
}
