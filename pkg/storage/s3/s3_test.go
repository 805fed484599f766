package s3

import (
	"context"
	"strings"
	"testing"
)

func TestNewValidatesConfig(t *testing.T) {
	cases := map[string]Config{
		"missing bucket":      {AccessKey: "a", SecretKey: "b"},
		"missing credentials": {Bucket: "snapshots"},
		"bad url mode":        {Bucket: "snapshots", AccessKey: "a", SecretKey: "b", URLMode: "public"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(cfg); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestProxyURL(t *testing.T) {
	s, err := New(Config{
		Endpoint:    "http://127.0.0.1:9000",
		Bucket:      "snapshots",
		AccessKey:   "a",
		SecretKey:   "b",
		PathStyle:   true,
		URLMode:     URLModeProxy,
		ProxyPrefix: "/console/snapshots/",
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	url, err := s.GenerateURL(context.Background(), "snapshots/x.json")
	if err != nil {
		t.Fatalf("generate url: %v", err)
	}
	if url != "/console/snapshots/snapshots/x.json" {
		t.Fatalf("unexpected url %q", url)
	}
	if s.Type() != "s3" {
		t.Fatalf("unexpected type %q", s.Type())
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Bucket: "snapshots", AccessKey: "a", SecretKey: "b"}
	if err := normalize(&cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Region != defaultRegion {
		t.Errorf("expected region %s, got %s", defaultRegion, cfg.Region)
	}
	if cfg.URLMode != URLModePresigned {
		t.Errorf("expected presigned mode, got %s", cfg.URLMode)
	}
}

func TestPresignedURL(t *testing.T) {
	s, err := New(Config{
		Endpoint:  "http://127.0.0.1:9000",
		Bucket:    "snapshots",
		AccessKey: "a",
		SecretKey: "b",
		PathStyle: true,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	url, err := s.GenerateURL(context.Background(), "snapshots/x.json")
	if err != nil {
		t.Fatalf("generate url: %v", err)
	}
	if !strings.HasPrefix(url, "http://127.0.0.1:9000/snapshots/snapshots/x.json?") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.Contains(url, "X-Amz-Expires=86400") {
		t.Fatalf("expected 24h expiry in %q", url)
	}
}
