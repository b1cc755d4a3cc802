package engine

import (
	"time"

	idspkg "github.com/flowgraph/flowgraph/internal/engine/ids"
	"github.com/flowgraph/flowgraph/internal/engine/jsoncodec"
)

// CallerInfo identifies the external party on whose behalf an envelope was
// created. The caller's own correlation ID is carried verbatim for cross-system
// log correlation; it is distinct from the envelope's CorrelationID.
type CallerInfo struct {
	User          string `json:"user"`
	System        string `json:"system"`
	CorrelationID string `json:"correlation_id"`
}

// EnvelopeContext is set once at construction and immutable thereafter.
type EnvelopeContext struct {
	CreatedAt     time.Time  `json:"created_at"`
	CorrelationID string     `json:"correlation_id"`
	Caller        CallerInfo `json:"caller"`
}

// Envelope is the unit of work flowing through the graph. Payload and Vars are
// mutated in place by node work; the engine itself never validates or copies
// them on a node's behalf. One envelope is shared, by reference, across every
// node it visits, fan-out branches included.
type Envelope struct {
	Payload any `json:"payload"`

	// OriginalPayload is a deep snapshot of Payload taken at construction,
	// kept for audit and diffing. Never mutated afterwards.
	OriginalPayload any `json:"original_payload"`

	Context EnvelopeContext `json:"context"`

	// Vars holds named deep-copied snapshots of payload-like values. Entries
	// never alias the current or a future Payload.
	Vars map[string]any `json:"vars"`
}

// NewEnvelope builds an envelope with a fresh correlation ID and a deep
// snapshot of the payload. It panics when the payload cannot be snapshotted;
// use TryNewEnvelope to handle that case explicitly.
func NewEnvelope(payload any, caller CallerInfo) *Envelope {
	env, err := TryNewEnvelope(payload, caller)
	if err != nil {
		panic(err)
	}
	return env
}

// TryNewEnvelope is NewEnvelope with an error return instead of a panic. The
// only failure mode is a payload the codec cannot represent.
func TryNewEnvelope(payload any, caller CallerInfo) (*Envelope, error) {
	original, err := jsoncodec.DeepCopy(payload)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Payload:         payload,
		OriginalPayload: original,
		Context: EnvelopeContext{
			CreatedAt:     time.Now().UTC(),
			CorrelationID: idspkg.NewCorrelationID(),
			Caller:        caller,
		},
		Vars: make(map[string]any),
	}, nil
}
