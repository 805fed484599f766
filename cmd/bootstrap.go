package cmd

import (
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	goredis "github.com/redis/go-redis/v9"
	"github.com/yi-nology/merchant_console/biz/client"
	"github.com/yi-nology/merchant_console/biz/service"
	"github.com/yi-nology/merchant_console/pkg/config"
	"github.com/yi-nology/merchant_console/pkg/database"
	"github.com/yi-nology/merchant_console/pkg/lock"
	"github.com/yi-nology/merchant_console/pkg/redis"
	"github.com/yi-nology/merchant_console/pkg/storage"
	"gorm.io/gorm"
)

const lockAcquireTimeout = 10 * time.Second

// session bundles a controller with the resources it owns.
type session struct {
	ctrl    *service.Controller
	journal *service.DBJournal
	db      *gorm.DB
	redis   *goredis.Client
}

// newSession wires the controller from c. Journal, snapshot storage and the
// write lock are optional and stay off when their section is disabled.
func newSession(c *config.Config) (*session, error) {
	backendClient, err := client.New(c.Backend.BaseURL, c.Backend.Timeout)
	if err != nil {
		return nil, err
	}
	out := &session{}
	opts := []service.Option{service.WithOperator(c.Console.Operator)}

	out.db, err = database.Open(c.Database)
	if err != nil {
		return nil, err
	}
	if out.db != nil {
		out.journal, err = service.NewDBJournal(out.db)
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("journal: %w", err)
		}
		opts = append(opts, service.WithJournal(out.journal))
	}

	store, err := storage.New(c.Storage)
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("snapshot storage: %w", err)
	}
	if store != nil {
		opts = append(opts, service.WithSnapshotStore(store))
	}

	out.redis, err = redis.NewClient(c.Redis)
	if err != nil {
		out.Close()
		return nil, err
	}
	if out.redis != nil {
		writeLock := lock.New(out.redis, c.Redis.LockKey, c.Redis.LockTTL, lockAcquireTimeout)
		opts = append(opts, service.WithWriteLock(writeLock))
		hlog.Infof("write lock enabled on %s", writeLock.Key())
	}

	out.ctrl = service.NewController(backendClient, opts...)
	hlog.Debugf("console wired to %s", backendClient.BaseURL())
	return out, nil
}

func (c *session) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			hlog.Warnf("close redis: %v", err)
		}
	}
	if err := database.Close(c.db); err != nil {
		hlog.Warnf("close database: %v", err)
	}
}
