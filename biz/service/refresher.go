package service

import (
	"context"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/robfig/cron/v3"
)

// Refresher reloads the list on start and then on a fixed interval.
type Refresher struct {
	ctrl     *Controller
	interval time.Duration
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
}

func NewRefresher(ctrl *Controller, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		ctrl:     ctrl,
		interval: interval,
		cron: cron.New(
			cron.WithLogger(cronLogger{}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start performs the initial fetch and schedules the periodic one. Nothing is
// scheduled once Stop has been called.
func (r *Refresher) Start() {
	r.ctrl.Refresh(r.ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx.Err() != nil {
		hlog.Infof("periodic refresh not scheduled: refresher stopped")
		return
	}
	r.cron.Schedule(cron.Every(r.interval), cron.FuncJob(func() {
		r.ctrl.Tick(r.ctx)
	}))
	r.cron.Start()
	hlog.Infof("periodic refresh every %s", r.interval)
}

// Stop cancels the fetch in flight and waits for the scheduler to drain.
func (r *Refresher) Stop() {
	r.cancel()
	r.mu.Lock()
	defer r.mu.Unlock()
	<-r.cron.Stop().Done()
}

// cronLogger forwards scheduler logs to hlog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	hlog.Debugf("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	hlog.Errorf("cron: %s: %v %v", msg, err, keysAndValues)
}
