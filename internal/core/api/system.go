package api

import "context"

// GetAllActiveCampus lists campuses. Unsigned.
func (c *Client) GetAllActiveCampus(ctx context.Context) Response {
	return c.get(ctx, "GetAllActiveCampus", nil)
}

// GetVersion returns the backend's app version info. Unsigned.
func (c *Client) GetVersion(ctx context.Context) Response {
	return c.get(ctx, "GetVersion", nil)
}
