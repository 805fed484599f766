package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yi-nology/merchant_console/biz/model/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListConfigs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/configs", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"configs": []map[string]string{
				{"sys_id": "s1", "product_id": "p1", "environment": "production"},
				{"sys_id": "s2", "product_id": "p2", "environment": "test"},
			},
			"count": 2,
		})
	})

	configs, err := c.ListConfigs(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "s1", configs[0].SysID)
	assert.Equal(t, "production", configs[0].Environment)
}

func TestCreateConfigSendsRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/config", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var got map[string]string
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "s1", got["sys_id"])
		assert.Equal(t, "", got["wx_woa_app_id"])
		assert.Contains(t, got, "wx_woa_path")
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok", "sys_id": "s1"})
	})

	resp, err := c.CreateConfig(context.Background(), &api.SystemConfig{
		SysID:         "s1",
		ProductID:     "p1",
		RSAPrivateKey: "key",
		Environment:   "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SysID)
}

func TestCreateConfigApplicationFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request", "details": "bad key"})
	})

	_, err := c.CreateConfig(context.Background(), &api.SystemConfig{SysID: "s1"})
	require.Error(t, err)
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "bad key", apiErr.Details)
}

func TestNonSuccessWithoutJSONIsDecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := c.DeleteConfig(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrDecode))
	_, isAPI := api.AsAPIError(err)
	assert.False(t, isAPI)
}

func TestDeleteConfigEscapesPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/config/sys 1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	require.NoError(t, c.DeleteConfig(context.Background(), "sys 1"))
}

func TestConfigureWeChatKeepsRawMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wechat-config", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"huifu_id":  "h1",
			"wx_app_id": "wx1",
			"message":   map[string]any{"resp_desc": "成功"},
		})
	})

	resp, err := c.ConfigureWeChat(context.Background(), &api.WeChatConfigRequest{SysID: "s1", HuifuID: "h1", FeeType: "01"})
	require.NoError(t, err)
	assert.Equal(t, "wx1", resp.WxAppID)
	assert.JSONEq(t, `{"resp_desc":"成功"}`, string(resp.Message))
}

func TestQueryWeChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wechat-config-query", r.URL.Path)
		var req api.WeChatQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "h1", req.HuifuID)
		writeJSON(w, http.StatusOK, map[string]any{"huifu_id": "h1", "message": "ok"})
	})

	resp, err := c.QueryWeChat(context.Background(), &api.WeChatQueryRequest{SysID: "s1", HuifuID: "h1"})
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(resp.Message))
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(url, time.Second)
	require.NoError(t, err)

	_, err = c.ListConfigs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrTransport))
}

func TestCancelledContextIsTransportFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GenerateTestKey(ctx)
	assert.True(t, errors.Is(err, api.ErrTransport))
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", time.Second)
	assert.Error(t, err)
}
