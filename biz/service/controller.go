package service

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/yi-nology/merchant_console/biz/console"
	"github.com/yi-nology/merchant_console/biz/dal/model"
	"github.com/yi-nology/merchant_console/biz/model/api"
	"github.com/yi-nology/merchant_console/pkg/common"
	"github.com/yi-nology/merchant_console/pkg/metrics"
	"github.com/yi-nology/merchant_console/pkg/storage"
)

// Backend is the merchant configuration API the console drives.
type Backend interface {
	ListConfigs(ctx context.Context) ([]api.ConfigSummary, error)
	CreateConfig(ctx context.Context, cfg *api.SystemConfig) (*api.SaveConfigResponse, error)
	DeleteConfig(ctx context.Context, sysID string) error
	ConfigureWeChat(ctx context.Context, req *api.WeChatConfigRequest) (*api.WeChatConfigResponse, error)
	QueryWeChat(ctx context.Context, req *api.WeChatQueryRequest) (*api.WeChatQueryResponse, error)
	GenerateTestKey(ctx context.Context) (*api.TestKeyResponse, error)
	TestConfig(ctx context.Context, sysID string) (*api.TestConfigResponse, error)
}

// Locker serializes write commands across console instances.
type Locker interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

// Controller owns one console's UiState and executes the commands its actions
// produce. State changes happen under mu; backend calls run outside it.
type Controller struct {
	backend  Backend
	journal  Journal
	locker   Locker
	store    storage.Storage
	operator string
	newToken func() string

	mu     sync.Mutex
	state  console.UiState
	last   []api.ConfigSummary
	loaded bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithJournal records every executed command.
func WithJournal(j Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithWriteLock routes create, delete and WeChat binding through l.
func WithWriteLock(l Locker) Option {
	return func(c *Controller) { c.locker = l }
}

// WithSnapshotStore enables snapshot export.
func WithSnapshotStore(s storage.Storage) Option {
	return func(c *Controller) { c.store = s }
}

// WithOperator names the journal operator when the request carries none.
func WithOperator(name string) Option {
	return func(c *Controller) { c.operator = name }
}

// WithTokenSource replaces the refresh token generator.
func WithTokenSource(fn func() string) Option {
	return func(c *Controller) { c.newToken = fn }
}

func NewController(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		newToken: uuid.NewString,
		state:    console.NewUiState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current UI state.
func (c *Controller) State() console.UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// --------------------- Actions ---------------------

// Refresh reloads the configuration list, superseding any fetch in flight.
func (c *Controller) Refresh(ctx context.Context) console.UiState {
	token := c.newToken()
	return c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		return console.Refresh(s, token)
	})
}

// Tick is the periodic refresh. It is skipped while a fetch is in flight and
// reports whether a fetch was started.
func (c *Controller) Tick(ctx context.Context) bool {
	token := c.newToken()
	started := false
	c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		if s.Refreshing() {
			return s, nil
		}
		started = true
		return console.Refresh(s, token)
	})
	if !started {
		metrics.RefreshSkipped.Inc()
		hlog.CtxDebugf(ctx, "periodic refresh skipped: fetch in flight")
	}
	return started
}

// SaveConfig replaces the config form with form and submits it.
func (c *Controller) SaveConfig(ctx context.Context, form console.ConfigForm) console.UiState {
	return c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		return console.SubmitConfigForm(console.EditConfigForm(s, form))
	})
}

// SubmitConfigForm submits the config form as it currently stands.
func (c *Controller) SubmitConfigForm(ctx context.Context) console.UiState {
	return c.dispatch(ctx, console.SubmitConfigForm)
}

// Delete removes sysID once confirmed.
func (c *Controller) Delete(ctx context.Context, sysID string, confirmed bool) console.UiState {
	if !confirmed {
		hlog.CtxInfof(ctx, "delete of %s declined", sysID)
	}
	return c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		return console.RequestDelete(s, sysID, confirmed)
	})
}

// Select makes sysID the active configuration.
func (c *Controller) Select(ctx context.Context, sysID string) console.UiState {
	return c.update(func(s console.UiState) console.UiState {
		return console.SelectConfig(s, sysID)
	})
}

// ConfigureWeChat submits the WeChat merchant form.
func (c *Controller) ConfigureWeChat(ctx context.Context, form console.WeChatForm) console.UiState {
	return c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		return console.SubmitWeChatForm(s, form)
	})
}

// QueryWeChat reads the WeChat binding of huifuID under the selection.
func (c *Controller) QueryWeChat(ctx context.Context, huifuID string) console.UiState {
	return c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		return console.QueryWeChatConfig(s, huifuID)
	})
}

// GenerateTestKey fills the RSA field with a throwaway key.
func (c *Controller) GenerateTestKey(ctx context.Context) console.UiState {
	return c.dispatch(ctx, console.RequestTestKey)
}

// TestConfig asks the backend to validate sysID, or the selection when empty.
func (c *Controller) TestConfig(ctx context.Context, sysID string) console.UiState {
	return c.dispatch(ctx, func(s console.UiState) (console.UiState, console.Command) {
		return console.RequestConfigTest(s, sysID)
	})
}

// PasteRSAKey stores pasted key material in the config form.
func (c *Controller) PasteRSAKey(text string) console.UiState {
	return c.update(func(s console.UiState) console.UiState {
		return console.PasteRSAKey(s, text)
	})
}

// EditConfigForm replaces the config form without submitting it.
func (c *Controller) EditConfigForm(form console.ConfigForm) console.UiState {
	return c.update(func(s console.UiState) console.UiState {
		return console.EditConfigForm(s, form)
	})
}

// Prefill copies deep-link parameters into the config form.
func (c *Controller) Prefill(query url.Values) console.UiState {
	return c.update(func(s console.UiState) console.UiState {
		return console.Prefill(s, query)
	})
}

// ClearForm resets the config form.
func (c *Controller) ClearForm() console.UiState {
	return c.update(console.ClearForm)
}

// DismissAlert hides the alert.
func (c *Controller) DismissAlert() console.UiState {
	return c.update(console.DismissAlert)
}

// Shortcut runs the action bound to chord. handled is false for unbound chords.
func (c *Controller) Shortcut(ctx context.Context, chord string) (state console.UiState, handled bool) {
	switch console.ResolveShortcut(chord) {
	case console.ShortcutSave:
		return c.SubmitConfigForm(ctx), true
	case console.ShortcutRefresh:
		return c.Refresh(ctx), true
	}
	return c.State(), false
}

// --------------------- Dispatcher ---------------------

func (c *Controller) update(fn func(console.UiState) console.UiState) console.UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state.Snapshot()
}

// dispatch applies an action and then executes its command, feeding each
// result back through the reducer until no follow-up remains.
func (c *Controller) dispatch(ctx context.Context, action func(console.UiState) (console.UiState, console.Command)) console.UiState {
	c.mu.Lock()
	next, cmd := action(c.state)
	c.state = next
	c.mu.Unlock()

	for cmd != nil {
		start := time.Now()
		result := c.execute(ctx, cmd)
		elapsed := time.Since(start)
		token := c.newToken()

		c.mu.Lock()
		stale := console.Stale(c.state, result)
		if fetched, ok := result.(console.ConfigsFetched); ok && !stale && fetched.Err == nil {
			c.last = fetched.Configs
			c.loaded = true
		}
		var follow console.Command
		c.state, follow = console.Reduce(c.state, result, token)
		alert := c.state.Alert
		c.mu.Unlock()

		c.observe(ctx, cmd, result, stale, alert, elapsed)
		cmd = follow
	}
	return c.State()
}

func (c *Controller) observe(ctx context.Context, cmd console.Command, result console.Result, stale bool, alert console.Alert, elapsed time.Duration) {
	outcome := model.OutcomeOK
	message := ""
	switch {
	case stale:
		outcome = model.OutcomeIgnored
		metrics.StaleResults.Inc()
		hlog.CtxInfof(ctx, "%s result superseded by a newer refresh", cmd.Name())
	case result.Failure() != nil:
		outcome = model.OutcomeFailed
		message = result.Failure().Error()
		hlog.CtxErrorf(ctx, "%s %s failed after %v: %v", cmd.Name(), cmd.Target(), elapsed, result.Failure())
	default:
		if _, isFetch := cmd.(console.FetchConfigs); !isFetch {
			message = alert.Message
		}
		if console.IsWrite(cmd) {
			hlog.CtxInfof(ctx, "%s %s by %q done in %v", cmd.Name(), cmd.Target(), c.operatorOf(ctx), elapsed)
		} else {
			hlog.CtxDebugf(ctx, "%s %s done in %v", cmd.Name(), cmd.Target(), elapsed)
		}
	}
	metrics.ObserveCommand(cmd.Name(), outcome, elapsed)

	if c.journal == nil {
		return
	}
	operator := c.operatorOf(ctx)
	rec := &model.ActionRecord{
		Command:    cmd.Name(),
		SysID:      cmd.Target(),
		Outcome:    outcome,
		Message:    message,
		DurationMs: elapsed.Milliseconds(),
		Operator:   operator,
	}
	if err := c.journal.Record(context.WithoutCancel(ctx), rec); err != nil {
		hlog.CtxWarnf(ctx, "journal %s: %v", cmd.Name(), err)
	}
}

func (c *Controller) operatorOf(ctx context.Context) string {
	if operator := common.GetOperator(ctx); operator != "" {
		return operator
	}
	return c.operator
}
