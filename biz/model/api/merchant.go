// Package api provides the request/response models exchanged with the merchant
// configuration backend.
package api

import "encoding/json"

// SystemConfig is a system-level payment configuration owned by the backend.
type SystemConfig struct {
	SysID         string `json:"sys_id"`
	ProductID     string `json:"product_id"`
	RSAPrivateKey string `json:"rsa_private_key"`
	Environment   string `json:"environment"`
	WxWoaAppID    string `json:"wx_woa_app_id"`
	WxWoaPath     string `json:"wx_woa_path"`
}

// ConfigSummary is one entry of the list endpoint. Keys are never returned.
type ConfigSummary struct {
	SysID       string `json:"sys_id"`
	ProductID   string `json:"product_id"`
	Environment string `json:"environment"`
}

// ConfigListResponse is returned by GET /api/configs.
type ConfigListResponse struct {
	Configs []ConfigSummary `json:"configs"`
	Count   int             `json:"count,omitempty"`
}

// SaveConfigResponse is returned by POST /api/config.
type SaveConfigResponse struct {
	Message string `json:"message,omitempty"`
	SysID   string `json:"sys_id,omitempty"`
}

// DeleteConfigResponse is returned by DELETE /api/config/{sys_id}.
type DeleteConfigResponse struct {
	Message string `json:"message,omitempty"`
	SysID   string `json:"sys_id,omitempty"`
}

// WeChatConfigRequest binds a WeChat official account to a merchant.
type WeChatConfigRequest struct {
	SysID      string `json:"sys_id"`
	HuifuID    string `json:"huifu_id"`
	WxWoaAppID string `json:"wx_woa_app_id"`
	WxWoaPath  string `json:"wx_woa_path"`
	FeeType    string `json:"fee_type"`
}

// WeChatConfigResponse is returned by POST /api/wechat-config.
// Message is kept raw: the backend sends either a string or the provider payload.
type WeChatConfigResponse struct {
	HuifuID string          `json:"huifu_id"`
	WxAppID string          `json:"wx_app_id"`
	Message json.RawMessage `json:"message,omitempty"`
}

// WeChatQueryRequest asks for the current WeChat binding of a merchant.
type WeChatQueryRequest struct {
	SysID   string `json:"sys_id"`
	HuifuID string `json:"huifu_id"`
}

// WeChatQueryResponse is returned by POST /api/wechat-config-query.
type WeChatQueryResponse struct {
	HuifuID string          `json:"huifu_id"`
	Message json.RawMessage `json:"message,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// TestKeyResponse is returned by GET /api/generate-test-key.
type TestKeyResponse struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key,omitempty"`
	Message    string `json:"message,omitempty"`
}

// TestConfigRequest asks the backend to exercise a saved configuration.
type TestConfigRequest struct {
	SysID string `json:"sys_id"`
}

// TestConfigResponse is returned by POST /api/test-config.
type TestConfigResponse struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ErrorResponse is the body the backend sends with a non-2xx status.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
