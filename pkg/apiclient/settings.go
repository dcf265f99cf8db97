package apiclient

import "context"

// Setting is a server configuration entry (admin only).
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// ListSettings returns all server settings.
func (c *Client) ListSettings(ctx context.Context) ([]Setting, error) {
	return listResources[Setting](ctx, c, resourcePath("settings"))
}

// GetSetting returns a single setting by key.
func (c *Client) GetSetting(ctx context.Context, key string) (*Setting, error) {
	return getResource[Setting](ctx, c, resourcePath("settings", key))
}

// SetSetting creates or replaces a setting.
func (c *Client) SetSetting(ctx context.Context, key, value string) (*Setting, error) {
	return updateResource[Setting](ctx, c, resourcePath("settings", key), setSettingRequest{Value: value})
}

// DeleteSetting removes a setting.
func (c *Client) DeleteSetting(ctx context.Context, key string) error {
	return c.delete(ctx, resourcePath("settings", key))
}
