package storage

import (
	"fmt"

	"github.com/yi-nology/merchant_console/pkg/config"
	"github.com/yi-nology/merchant_console/pkg/storage/local"
	"github.com/yi-nology/merchant_console/pkg/storage/s3"
)

// New creates a storage adapter based on configuration.
// Type "none" disables snapshot export and returns nil, nil.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "none":
		return nil, nil

	case "", "local":
		basePath := cfg.Local.BasePath
		if basePath == "" {
			basePath = config.DefaultSnapshotPath
		}
		return local.New(basePath, ProxyPathPrefix)

	case "s3":
		return s3.New(s3.Config{
			Endpoint:    cfg.S3.Endpoint,
			Region:      cfg.S3.Region,
			Bucket:      cfg.S3.Bucket,
			AccessKey:   cfg.S3.AccessKey,
			SecretKey:   cfg.S3.SecretKey,
			PathStyle:   cfg.S3.PathStyle,
			URLMode:     cfg.S3.URLMode,
			ProxyPrefix: ProxyPathPrefix,
		})

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
