// Package client talks to the merchant configuration backend over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/merchant_console/biz/model/api"
)

const (
	pathGenerateTestKey = "/api/generate-test-key"
	pathConfigs         = "/api/configs"
	pathConfig          = "/api/config"
	pathWeChatConfig    = "/api/wechat-config"
	pathWeChatQuery     = "/api/wechat-config-query"
	pathTestConfig      = "/api/test-config"

	defaultDialTimeout = 5 * time.Second
)

// Client is a typed wrapper around the backend JSON API.
type Client struct {
	baseURL string
	timeout time.Duration
	hc      *client.Client
}

// New creates a backend client rooted at baseURL (e.g. "http://127.0.0.1:8080").
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base url must be configured")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	hc, err := client.NewClient(
		client.WithDialTimeout(defaultDialTimeout),
		client.WithClientReadTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return &Client{baseURL: baseURL, timeout: timeout, hc: hc}, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListConfigs fetches every system configuration known to the backend.
func (c *Client) ListConfigs(ctx context.Context) ([]api.ConfigSummary, error) {
	var out api.ConfigListResponse
	if err := c.do(ctx, consts.MethodGet, pathConfigs, nil, &out); err != nil {
		return nil, err
	}
	return out.Configs, nil
}

// CreateConfig saves a new system configuration.
func (c *Client) CreateConfig(ctx context.Context, cfg *api.SystemConfig) (*api.SaveConfigResponse, error) {
	var out api.SaveConfigResponse
	if err := c.do(ctx, consts.MethodPost, pathConfig, cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConfig removes the configuration identified by sysID.
func (c *Client) DeleteConfig(ctx context.Context, sysID string) error {
	var out api.DeleteConfigResponse
	return c.do(ctx, consts.MethodDelete, pathConfig+"/"+url.PathEscape(sysID), nil, &out)
}

// ConfigureWeChat binds a WeChat official account to a merchant.
func (c *Client) ConfigureWeChat(ctx context.Context, req *api.WeChatConfigRequest) (*api.WeChatConfigResponse, error) {
	var out api.WeChatConfigResponse
	if err := c.do(ctx, consts.MethodPost, pathWeChatConfig, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryWeChat reads the WeChat binding of a merchant.
func (c *Client) QueryWeChat(ctx context.Context, req *api.WeChatQueryRequest) (*api.WeChatQueryResponse, error) {
	var out api.WeChatQueryResponse
	if err := c.do(ctx, consts.MethodPost, pathWeChatQuery, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateTestKey asks the backend for a throwaway RSA key pair.
func (c *Client) GenerateTestKey(ctx context.Context) (*api.TestKeyResponse, error) {
	var out api.TestKeyResponse
	if err := c.do(ctx, consts.MethodGet, pathGenerateTestKey, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestConfig asks the backend to exercise a saved configuration.
func (c *Client) TestConfig(ctx context.Context, sysID string) (*api.TestConfigResponse, error) {
	var out api.TestConfigResponse
	if err := c.do(ctx, consts.MethodPost, pathTestConfig, &api.TestConfigRequest{SysID: sysID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one JSON request. Transport failures wrap api.ErrTransport, unparsable
// bodies wrap api.ErrDecode and non-2xx answers come back as *api.APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s %s: %v", api.ErrTransport, method, path, err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.Set("Accept", consts.MIMEApplicationJSON)
	req.Header.Set("Content-Type", consts.MIMEApplicationJSON)
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.SetBody(payload)
	}

	var err error
	if c.timeout > 0 {
		err = c.hc.DoTimeout(ctx, req, resp, c.timeout)
	} else {
		err = c.hc.Do(ctx, req, resp)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", api.ErrTransport, method, path, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)

	if status < 200 || status >= 300 {
		var failure api.ErrorResponse
		if err := json.Unmarshal(body, &failure); err != nil {
			return fmt.Errorf("%w: status %d: %v", api.ErrDecode, status, err)
		}
		return &api.APIError{StatusCode: status, Details: failure.Details, Body: body}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", api.ErrDecode, method, path, err)
	}
	return nil
}
