package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/merchant_console/biz/console"
	"github.com/yi-nology/merchant_console/biz/model/api"
	"github.com/yi-nology/merchant_console/pkg/util"
)

// execute performs the backend call behind cmd and wraps its outcome.
func (c *Controller) execute(ctx context.Context, cmd console.Command) console.Result {
	switch cmd := cmd.(type) {
	case console.FetchConfigs:
		configs, err := c.backend.ListConfigs(ctx)
		return console.ConfigsFetched{Token: cmd.Token, Configs: configs, Err: err}

	case console.CreateConfig:
		err := c.write(ctx, func(ctx context.Context) error {
			_, err := c.backend.CreateConfig(ctx, &cmd.Config)
			return err
		})
		if apiErr, ok := api.AsAPIError(err); ok {
			hlog.CtxErrorf(ctx, "save %s rejected: status=%d body=%s", cmd.Config.SysID, apiErr.StatusCode, apiErr.Body)
		}
		return console.ConfigCreated{SysID: cmd.Config.SysID, Err: err}

	case console.DeleteConfig:
		err := c.write(ctx, func(ctx context.Context) error {
			return c.backend.DeleteConfig(ctx, cmd.SysID)
		})
		return console.ConfigDeleted{SysID: cmd.SysID, Err: err}

	case console.ConfigureWeChat:
		var resp *api.WeChatConfigResponse
		err := c.write(ctx, func(ctx context.Context) error {
			var err error
			resp, err = c.backend.ConfigureWeChat(ctx, &cmd.Request)
			return err
		})
		return console.WeChatConfigured{Response: resp, Err: err}

	case console.QueryWeChat:
		resp, err := c.backend.QueryWeChat(ctx, &cmd.Request)
		return console.WeChatQueried{Response: resp, Err: err}

	case console.GenerateTestKey:
		return c.generateTestKey(ctx)

	case console.TestConfig:
		resp, err := c.backend.TestConfig(ctx, cmd.SysID)
		return console.ConfigTested{SysID: cmd.SysID, Response: resp, Err: err}
	}

	hlog.CtxErrorf(ctx, "unknown command %T", cmd)
	return unknownResult{}
}

// generateTestKey falls back to a locally generated key when the backend
// answers but refuses to produce one.
func (c *Controller) generateTestKey(ctx context.Context) console.TestKeyGenerated {
	resp, err := c.backend.GenerateTestKey(ctx)
	if err == nil {
		return console.TestKeyGenerated{PrivateKey: resp.PrivateKey}
	}
	if _, ok := api.AsAPIError(err); !ok {
		return console.TestKeyGenerated{Err: err}
	}

	hlog.CtxWarnf(ctx, "backend refused test key, generating locally: %v", err)
	key, genErr := util.GenerateRSAPrivateKey(util.TestKeyBits)
	if genErr != nil {
		return console.TestKeyGenerated{Err: genErr}
	}
	return console.TestKeyGenerated{PrivateKey: key, Local: true}
}

// write runs fn under the write lock when one is configured.
func (c *Controller) write(ctx context.Context, fn func(context.Context) error) error {
	if c.locker == nil {
		return fn(ctx)
	}
	return c.locker.Do(ctx, fn)
}

type unknownResult struct{}

func (unknownResult) Failure() error { return nil }
