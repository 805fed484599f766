package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/yi-nology/merchant_console/biz/model/api"
)

const snapshotPrefix = "snapshots/"

var (
	ErrSnapshotDisabled = errors.New("snapshot storage is not configured")
	ErrNothingLoaded    = errors.New("no configuration list has been loaded yet")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Snapshot is the exported form of the last successfully fetched list.
type Snapshot struct {
	ExportedAt time.Time           `json:"exported_at"`
	Count      int                 `json:"count"`
	Configs    []api.ConfigSummary `json:"configs"`
}

// SnapshotRef locates an exported snapshot.
type SnapshotRef struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Storage string `json:"storage"`
	Count   int    `json:"count"`
}

// ExportSnapshot writes the last successfully fetched list to storage.
func (c *Controller) ExportSnapshot(ctx context.Context) (*SnapshotRef, error) {
	if c.store == nil {
		return nil, ErrSnapshotDisabled
	}
	c.mu.Lock()
	loaded := c.loaded
	configs := append([]api.ConfigSummary{}, c.last...)
	c.mu.Unlock()
	if !loaded {
		return nil, ErrNothingLoaded
	}

	now := time.Now().UTC()
	payload, err := json.MarshalIndent(Snapshot{ExportedAt: now, Count: len(configs), Configs: configs}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s-%s.json", snapshotPrefix, now.Format("20060102T150405Z"), uuid.NewString()[:8])
	if err := c.store.PutObject(ctx, key, bytes.NewReader(payload), "application/json", int64(len(payload))); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	url, err := c.store.GenerateURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("snapshot url: %w", err)
	}
	hlog.CtxInfof(ctx, "exported %d configs to %s storage as %s", len(configs), c.store.Type(), key)
	return &SnapshotRef{Key: key, URL: url, Storage: c.store.Type(), Count: len(configs)}, nil
}

// OpenSnapshot streams a previously exported snapshot.
func (c *Controller) OpenSnapshot(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := c.checkSnapshot(ctx, key); err != nil {
		return nil, err
	}
	return c.store.GetObject(ctx, key)
}

// DeleteSnapshot removes a previously exported snapshot.
func (c *Controller) DeleteSnapshot(ctx context.Context, key string) error {
	if err := c.checkSnapshot(ctx, key); err != nil {
		return err
	}
	return c.store.DeleteObject(ctx, key)
}

func (c *Controller) checkSnapshot(ctx context.Context, key string) error {
	if c.store == nil {
		return ErrSnapshotDisabled
	}
	if !strings.HasPrefix(key, snapshotPrefix) || strings.Contains(key, "..") {
		return ErrSnapshotNotFound
	}
	exists, err := c.store.ObjectExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSnapshotNotFound
	}
	return nil
}
