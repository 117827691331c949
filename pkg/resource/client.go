package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yosida95/uritemplate/v3"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/api"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/transport"
)

// Client accesses one resource endpoint with the uniform list/CRUD contract.
// T is the record shape the server returns. Calls are stateless and never
// retried: idempotence of a retried mutation is the caller's responsibility.
type Client[T any] struct {
	transport *transport.Transport
	endpoint  string
	byID      *uritemplate.Template
}

// NewClient binds a client to an endpoint path such as "user" or "product".
func NewClient[T any](t *transport.Transport, endpoint string) (*Client[T], error) {
	if endpoint == "" {
		return nil, fmt.Errorf("resource endpoint is required")
	}

	byID, err := uritemplate.New(endpoint + "/{id}")
	if err != nil {
		return nil, fmt.Errorf("building id template for %q: %w", endpoint, err)
	}

	return &Client[T]{transport: t, endpoint: endpoint, byID: byID}, nil
}

// idPath expands the <endpoint>/<id> path for a server-assigned identifier.
func (c *Client[T]) idPath(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%s id is required", c.endpoint)
	}
	path, err := c.byID.Expand(uritemplate.Values{
		"id": uritemplate.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("expanding %s id path: %w", c.endpoint, err)
	}
	return path, nil
}

// decodeEnvelope unpacks the {statusCodes, response} envelope from a 2xx
// body into out. A 2xx body that does not carry the envelope is malformed.
func (c *Client[T]) decodeEnvelope(body []byte, out any) error {
	var env api.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return api.Malformed(c.endpoint + " response is not valid JSON")
	}
	if len(env.Response) == 0 {
		return api.Malformed(c.endpoint + " response missing payload")
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return api.Malformed(c.endpoint + " response has unexpected shape")
	}
	return nil
}

// List fetches one page. The envelope comes back exactly as parsed: no
// client-side re-pagination or re-sorting.
func (c *Client[T]) List(ctx context.Context, q Query) (Page[T], error) {
	var page Page[T]

	if err := q.Validate(); err != nil {
		return page, err
	}

	resp, err := c.transport.Request(ctx, http.MethodGet, c.endpoint, q.Values(), nil)
	if err != nil {
		return page, err
	}
	if err := resp.Err(); err != nil {
		return page, err
	}

	if err := c.decodeEnvelope(resp.Body, &page); err != nil {
		return Page[T]{}, err
	}
	return page, nil
}

// Get fetches a single record by its server-assigned identifier.
func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	var record T

	path, err := c.idPath(id)
	if err != nil {
		return record, err
	}

	resp, err := c.transport.Request(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return record, err
	}
	if err := resp.Err(); err != nil {
		return record, err
	}

	if err := c.decodeEnvelope(resp.Body, &record); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Create submits a new record. Multipart payloads are form-encoded so the
// server extracts fields and attachments separately; everything else goes as
// a single JSON body.
func (c *Client[T]) Create(ctx context.Context, payload any) (T, error) {
	return c.mutate(ctx, http.MethodPost, c.endpoint, payload)
}

// Update replaces the record with the given identifier. Same transport
// contract as Create; the identifier lives in the endpoint path and is never
// invented by the client.
func (c *Client[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var record T

	path, err := c.idPath(id)
	if err != nil {
		return record, err
	}
	return c.mutate(ctx, http.MethodPut, path, payload)
}

// Delete removes the record with the given identifier.
func (c *Client[T]) Delete(ctx context.Context, id string) error {
	path, err := c.idPath(id)
	if err != nil {
		return err
	}

	resp, err := c.transport.Request(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return resp.Err()
}

func (c *Client[T]) mutate(ctx context.Context, method, path string, payload any) (T, error) {
	var record T

	body, err := encodePayload(payload)
	if err != nil {
		return record, err
	}

	resp, err := c.transport.Request(ctx, method, path, nil, body)
	if err != nil {
		return record, err
	}
	if err := resp.Err(); err != nil {
		return record, err
	}

	if err := c.decodeEnvelope(resp.Body, &record); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}
