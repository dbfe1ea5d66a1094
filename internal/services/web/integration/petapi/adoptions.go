package petapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestAdoption submits an adoption request for a pet.
func (c *Client) RequestAdoption(ctx context.Context, req AdoptionRequest) (AdoptionRequest, error) {
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}
	req.ID = ""
	req.Status = AdoptionPending
	var created createdResponse
	if err := c.do(ctx, request{
		method:         http.MethodPost,
		path:           "/adoptions",
		body:           req,
		idempotencyKey: uuid.NewString(),
	}, &created); err != nil {
		return AdoptionRequest{}, err
	}
	req.ID = created.id()
	return req, nil
}

// ListOwnerAdoptions loads requests made for pets owned by ownerID.
func (c *Client) ListOwnerAdoptions(ctx context.Context, ownerID string) ([]AdoptionRequest, error) {
	body, err := c.send(ctx, request{method: http.MethodGet, path: "/adoptions/owner/" + escape(ownerID)})
	if err != nil {
		return nil, err
	}
	result, err := decodeListing[AdoptionRequest](body, "adoptions")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// AcceptAdoption accepts a request.
func (c *Client) AcceptAdoption(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPatch, path: "/adoptions/" + escape(id) + "/accept"}, nil)
}

// RejectAdoption rejects a request.
func (c *Client) RejectAdoption(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPatch, path: "/adoptions/" + escape(id) + "/reject"}, nil)
}
