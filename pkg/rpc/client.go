package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/mintex-network/mintex-daemon/pkg/circuitbreaker"
)

type request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

type fault struct {
	Message string `json:"message"`
}

type response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *fault          `json:"error,omitempty"`
}

// Client is the HTTP implementation of Caller. One client addresses one
// remote endpoint; methods are namespaced strings like "bank.getMintettes".
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewClient returns a Client for the given endpoint with a per-request
// timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		breaker:  circuitbreaker.NewCircuitBreaker(endpoint),
	}
}

// Call implements Caller. The breaker wraps only the HTTP round trip:
// a server-reported method fault is a successful exchange and must not trip
// it.
func (c *Client) Call(ctx context.Context, method string, params, reply interface{}) error {
	body, err := json.Marshal(request{
		ID:     uuid.New().String(),
		Method: method,
		Params: params,
	})
	if err != nil {
		return fmt.Errorf("%w: encode request for %s: %v", ErrProtocol, method, err)
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, body)
	})
	if err != nil {
		return classify(method, err)
	}

	var resp response
	if err := json.Unmarshal(raw.([]byte), &resp); err != nil {
		return fmt.Errorf("%w: undecodable response for %s: %v", ErrProtocol, method, err)
	}
	if resp.Error != nil {
		return &MethodFault{Method: method, Message: resp.Error.Message}
	}
	if reply == nil {
		return nil
	}
	if len(resp.Result) == 0 {
		return fmt.Errorf("%w: missing result for %s", ErrProtocol, method)
	}
	if err := json.Unmarshal(resp.Result, reply); err != nil {
		return fmt.Errorf("%w: result shape mismatch for %s: %v", ErrProtocol, method, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	buf, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return buf, nil
}

func classify(method string, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: circuit open for %s", ErrTimeout, method)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %v", ErrTimeout, method, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, method, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrProtocol, method, err)
}
