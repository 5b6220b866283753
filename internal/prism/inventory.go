package prism

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	imagesPath  = "vmm/v4.1/content/images"
	subnetsPath = "networking/v4.1/config/subnets"
	vmsPath     = "vmm/v4.1/ahv/config/vms"
)

// ListImages returns the disk images available for deployment.
func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	body, _, err := c.Get(ctx, imagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var resp imageListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode image list: %w", err)
	}
	return resp.Data, nil
}

// ListSubnets returns the subnets a VM NIC can attach to.
func (c *Client) ListSubnets(ctx context.Context) ([]Subnet, error) {
	body, _, err := c.Get(ctx, subnetsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}

	var resp subnetListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode subnet list: %w", err)
	}
	return resp.Data, nil
}

// Ping verifies connectivity and credentials with a GET against the VM
// collection, the same probe the workflow issues before listing inventory.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.Get(ctx, vmsPath)
	return err
}
