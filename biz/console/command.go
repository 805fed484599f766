package console

import "github.com/yi-nology/merchant_console/biz/model/api"

// Command is a backend call requested by an action.
type Command interface {
	// Name identifies the command in logs, metrics and the journal.
	Name() string
	// Target is the sys_id the command acts on, if any.
	Target() string
}

// Write commands change backend state.
func IsWrite(cmd Command) bool {
	switch cmd.(type) {
	case CreateConfig, DeleteConfig, ConfigureWeChat:
		return true
	}
	return false
}

type FetchConfigs struct {
	Token string
}

func (FetchConfigs) Name() string   { return "fetch_configs" }
func (FetchConfigs) Target() string { return "" }

type CreateConfig struct {
	Config api.SystemConfig
}

func (CreateConfig) Name() string     { return "create_config" }
func (c CreateConfig) Target() string { return c.Config.SysID }

type DeleteConfig struct {
	SysID string
}

func (DeleteConfig) Name() string     { return "delete_config" }
func (c DeleteConfig) Target() string { return c.SysID }

type ConfigureWeChat struct {
	Request api.WeChatConfigRequest
}

func (ConfigureWeChat) Name() string     { return "configure_wechat" }
func (c ConfigureWeChat) Target() string { return c.Request.SysID }

type QueryWeChat struct {
	Request api.WeChatQueryRequest
}

func (QueryWeChat) Name() string     { return "query_wechat" }
func (c QueryWeChat) Target() string { return c.Request.SysID }

type GenerateTestKey struct{}

func (GenerateTestKey) Name() string   { return "generate_test_key" }
func (GenerateTestKey) Target() string { return "" }

type TestConfig struct {
	SysID string
}

func (TestConfig) Name() string     { return "test_config" }
func (c TestConfig) Target() string { return c.SysID }

// Result is the outcome of an executed command.
type Result interface {
	Failure() error
}

type ConfigsFetched struct {
	Token   string
	Configs []api.ConfigSummary
	Err     error
}

func (r ConfigsFetched) Failure() error { return r.Err }

type ConfigCreated struct {
	SysID string
	Err   error
}

func (r ConfigCreated) Failure() error { return r.Err }

type ConfigDeleted struct {
	SysID string
	Err   error
}

func (r ConfigDeleted) Failure() error { return r.Err }

type WeChatConfigured struct {
	Response *api.WeChatConfigResponse
	Err      error
}

func (r WeChatConfigured) Failure() error { return r.Err }

type WeChatQueried struct {
	Response *api.WeChatQueryResponse
	Err      error
}

func (r WeChatQueried) Failure() error { return r.Err }

// TestKeyGenerated carries the key to place in the form. Local is set when the
// backend refused and the key was generated in-process.
type TestKeyGenerated struct {
	PrivateKey string
	Local      bool
	Err        error
}

func (r TestKeyGenerated) Failure() error { return r.Err }

type ConfigTested struct {
	SysID    string
	Response *api.TestConfigResponse
	Err      error
}

func (r ConfigTested) Failure() error { return r.Err }
