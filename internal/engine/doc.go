// Package engine implements the flowgraph dispatch core: the message envelope
// model, the node/channel graph, the synchronous and deferred execution paths,
// and the per-node failure-capture protocol.
//
// The exported surface is re-published by the root flowgraph package; import
// that instead of this one.
//
// # Dispatch contract
//
// Send runs work synchronously in the caller's frame; Post defers it to the
// engine's single-goroutine scheduler. Fan-out over a channel's targets runs
// in registration order, each target's Send completing (or failing) before the
// next begins, unless a target itself defers. A work error is captured at the
// failing node, delivered exactly once to its failure sink, and never
// re-raised; traversal of that branch ends there. Failures on nodes without a
// sink escalate to the engine-wide handler.
//
// # Ownership
//
// The envelope is shared mutably by every node on its path. The engine never
// clones payloads; isolation across fan-out branches is achieved explicitly by
// nodes that snapshot through the variable store. Cycles in the graph are
// permitted and unchecked.
package engine
