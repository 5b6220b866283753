package prism

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// GetVM fetches a VM by external identifier and returns it together with the
// ETag response header. The ETag is the version token required by the
// conditional category-association write; callers must treat an empty token
// as a hard failure, not a warning.
func (c *Client) GetVM(ctx context.Context, extID string) (*VM, string, error) {
	body, etag, err := c.Get(ctx, vmsPath+"/"+extID)
	if err != nil {
		return nil, "", err
	}

	var resp vmGetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to decode VM: %w", err)
	}
	return &resp.Data, etag, nil
}

// AssociateCategories submits the associate-categories action for a VM.
//
// The write is conditional: etag must be the version token obtained from the
// immediately preceding GetVM. A fresh NTNX-Request-Id is attached per call.
// The action endpoint acknowledges accepted asynchronous work with HTTP 202
// and nothing else; any other status, 2xx included, is returned as an
// *APIError carrying the literal code.
//
// Returns the updated version token from the response, when present.
func (c *Client) AssociateCategories(ctx context.Context, extID, etag string, categoryIDs []string) (string, error) {
	refs := make([]Reference, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		refs = append(refs, Reference{ExtID: id})
	}

	headers := map[string]string{
		"If-Match":        etag,
		"NTNX-Request-Id": uuid.NewString(),
	}

	path := vmsPath + "/" + extID + "/$actions/associate-categories"
	resp, err := c.do(ctx, http.MethodPost, path, headers, associateCategoriesRequest{Categories: refs})
	if err != nil {
		return "", err
	}
	if resp.status != http.StatusAccepted {
		return "", newAPIError(http.MethodPost, c.baseURL+"/"+path, resp.status, resp.body)
	}
	return resp.etag, nil
}

// CreateVM submits a VM creation request and returns the raw response body,
// which the deploy workflow both summarizes and archives verbatim in the
// deployment record.
func (c *Client) CreateVM(ctx context.Context, req *CreateVMRequest) (json.RawMessage, error) {
	body, _, err := c.Post(ctx, vmsPath, nil, req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
