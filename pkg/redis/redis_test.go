package redis

import (
	"testing"

	"github.com/yi-nology/merchant_console/pkg/config"
)

func TestNewClientDisabled(t *testing.T) {
	client, err := NewClient(config.RedisConfig{Enabled: false, Address: "unused:6379"})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when disabled")
	}
}

func TestNewClientUnreachable(t *testing.T) {
	client, err := NewClient(config.RedisConfig{Enabled: true, Address: "127.0.0.1:1"})
	if err == nil {
		_ = client.Close()
		t.Fatal("expected ping failure for unreachable redis")
	}
}
