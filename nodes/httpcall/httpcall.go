// Package httpcall provides the external-invocation node: one outbound HTTP
// request per envelope, derived from static target/method/path configuration
// and the current payload.
//
// Only transport-level failures stop the branch (delivered to the failure
// sink); a non-success status code still forwards, with the response body as
// the new payload. Callers that care about status route on the status field a
// downstream node can read from the payload, or wrap the node with their own
// work.
package httpcall

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	flowgraph "github.com/flowgraph/flowgraph"
	"github.com/flowgraph/flowgraph/nodes"
)

// Kind is the name used to register this node kind.
const Kind = "httpcall"

const (
	defaultRequestTimeout  = 30 * time.Second
	defaultResponseTimeout = 30 * time.Second
)

// Config describes the outbound invocation.
type Config struct {
	// Target is the base URL, for example "http://inventory:8080".
	Target string `mapstructure:"target"`
	// Method defaults to GET. Write-style methods (POST, PUT, PATCH) send
	// the current payload as a JSON body.
	Method string `mapstructure:"method"`
	// Path is appended to Target.
	Path string `mapstructure:"path"`

	// RequestTimeout bounds connecting and sending the request;
	// ResponseTimeout bounds waiting for and reading the response. Both
	// default to 30s.
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ResponseTimeout time.Duration `mapstructure:"response_timeout"`

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client `mapstructure:"-"`
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

// New builds an external-invocation node on the supplied engine.
func New(eng *flowgraph.Engine, cfg Config) (*flowgraph.Node, error) {
	if eng == nil {
		return nil, flowgraph.ErrEngineRequired
	}
	if cfg.Target == "" {
		return nil, errors.New("httpcall: target is required")
	}
	if _, err := url.Parse(cfg.Target); err != nil {
		return nil, errors.New("httpcall: target is not a valid URL")
	}
	if cfg.Method == "" {
		cfg.Method = http.MethodGet
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = defaultResponseTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}

	return eng.NewNode(flowgraph.NodeConfig{
		Kind: Kind,
		Work: func(n *flowgraph.Node, msg *flowgraph.Envelope) error {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+cfg.ResponseTimeout)
			defer cancel()

			var body io.Reader
			if writeStyle(cfg.Method) {
				data, err := flowgraph.Marshal(msg.Payload)
				if err != nil {
					return err
				}
				body = bytes.NewReader(data)
			}

			req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.Target+cfg.Path, body)
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Correlation-ID", msg.Context.CorrelationID)

			resp, err := client.Do(req)
			if err != nil {
				// Transport-level failure: no forward, straight to the sink.
				return err
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			var decoded any
			if len(data) > 0 && flowgraph.Unmarshal(data, &decoded) == nil {
				msg.Payload = decoded
			} else {
				msg.Payload = string(data)
			}

			// A non-success status is not a transport failure; forward anyway.
			n.Next("", msg)
			return nil
		},
	})
}

func writeStyle(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
