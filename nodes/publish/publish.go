// Package publish provides an egress bridge node: it marshals the current
// payload and publishes it to a Watermill topic, then forwards the envelope.
// With an in-process Pub/Sub (watermill's gochannel) this hands envelopes off
// to subscribers outside the graph without leaving the process.
package publish

import (
	"github.com/ThreeDotsLabs/watermill/message"

	flowgraph "github.com/flowgraph/flowgraph"
)

// Kind labels publish nodes in traces and metrics. Publish nodes need a live
// publisher, so they are not buildable from the registry.
const Kind = "publish"

// Metadata keys stamped on published messages.
const (
	MetadataCorrelationID       = "correlation_id"
	MetadataCallerUser          = "caller_user"
	MetadataCallerSystem        = "caller_system"
	MetadataCallerCorrelationID = "caller_correlation_id"
)

// Config carries the publisher and target topic.
type Config struct {
	Publisher message.Publisher
	Topic     string
}

// New builds a publish node on the supplied engine. A publish error is a
// transport failure: it goes to the failure sink and the branch ends without
// forwarding.
func New(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Publisher == nil {
		return nil, flowgraph.ErrPublisherRequired
	}
	if cfg.Topic == "" {
		return nil, flowgraph.ErrTopicRequired
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: Kind,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			data, err := flowgraph.Marshal(msg.Payload)
			if err != nil {
				return err
			}

			out := message.NewMessage(flowgraph.NewCorrelationID(), data)
			out.Metadata = message.Metadata{
				MetadataCorrelationID:       msg.Context.CorrelationID,
				MetadataCallerUser:          msg.Context.Caller.User,
				MetadataCallerSystem:        msg.Context.Caller.System,
				MetadataCallerCorrelationID: msg.Context.Caller.CorrelationID,
			}

			if err := cfg.Publisher.Publish(cfg.Topic, out); err != nil {
				return err
			}

			n.Next("", msg)
			return nil
		},
	})
}
