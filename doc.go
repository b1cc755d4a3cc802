// Package flowgraph is a small in-process engine for wiring processing nodes
// into a directed graph through which message envelopes flow. Each node runs a
// single work function, optionally forwards the shared envelope to downstream
// nodes on named channels, and captures its own failures as structured records
// delivered to a failure sink. Traversal ends when a node absorbs the message
// without forwarding, when a channel has no targets, or when work fails.
//
// The Engine hosts a single-threaded cooperative scheduler so that deferred
// dispatch (Post) and timer-based nodes never block the caller, and exposes
// trace hooks at node entry, channel fan-out, and failure. Built-in hook sets
// cover structured logging, Prometheus counters, and OpenTelemetry spans.
//
// # Node kinds
//
// The engine is agnostic to what work does; concrete node kinds live in the
// nodes/ tree and register themselves in a registry:
//   - transform: declarative field mapping over the payload
//   - delay: fixed-duration timer, payload unchanged
//   - vars: deep-copy variable set/get against the envelope's variable store
//   - merge: shallow merge of a stored variable onto the payload
//   - httpcall: outbound HTTP invocation with fixed timeouts
//   - sink: terminal node invoking a completion callback
//   - publish: egress bridge onto a Watermill publisher
//
// # Ownership
//
// An envelope is shared, mutably, by every node on its path; fan-out hands the
// same reference to each branch and the engine never clones it. Branches that
// need isolation snapshot the payload through the variable store. A minimal
// setup fills Config, creates an Engine, builds nodes with Engine.NewNode or
// the nodes registry, connects them, and injects an envelope with Send or Post.
package flowgraph
