package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"getaround-api/config"
)

func TestUnavailableCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	var svcs = []*CacheService{nil, {}}

	for _, svc := range svcs {
		if svc.Available() {
			t.Fatal("cache without client should be unavailable")
		}
		var dest map[string]float64
		found, err := svc.Get(ctx, "k", &dest)
		if err != nil || found {
			t.Errorf("Get() = %v, %v, want miss without error", found, err)
		}
		if err := svc.Set(ctx, "k", 1, time.Minute); err != nil {
			t.Errorf("Set() error: %v", err)
		}
		if err := svc.Publish(ctx, PredictionsChannel, "msg"); err != nil {
			t.Errorf("Publish() error: %v", err)
		}
		if err := svc.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	}
}

func TestNewCacheServiceUnreachable(t *testing.T) {
	svc, err := NewCacheService(config.RedisConfig{Host: "127.0.0.1", Port: 1, PingAttempts: 1})
	if err == nil {
		t.Fatal("expected error for unreachable redis")
	}
	if !strings.Contains(err.Error(), "after 1 attempts") {
		t.Errorf("unexpected error: %v", err)
	}
	if svc == nil || svc.Available() {
		t.Error("expected a usable but unavailable cache")
	}
}

func TestPredictionKey(t *testing.T) {
	type body struct {
		A string  `json:"a"`
		B float64 `json:"b"`
	}

	k1, err := PredictionKey(body{A: "x", B: 1})
	if err != nil {
		t.Fatalf("PredictionKey() error: %v", err)
	}
	k2, _ := PredictionKey(body{A: "x", B: 1})
	k3, _ := PredictionKey(body{A: "x", B: 2})

	if k1 != k2 {
		t.Errorf("equal inputs gave %q and %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("different inputs share a key")
	}
	if !strings.HasPrefix(k1, "prediction:") || len(k1) != len("prediction:")+64 {
		t.Errorf("unexpected key format %q", k1)
	}
}

func TestReportKey(t *testing.T) {
	tests := []struct {
		threshold float64
		want      string
	}{
		{0, "report:0"},
		{1.5, "report:1.5"},
		{-2, "report:-2"},
		{12, "report:12"},
	}
	for _, tt := range tests {
		if got := ReportKey(tt.threshold); got != tt.want {
			t.Errorf("ReportKey(%v) = %q, want %q", tt.threshold, got, tt.want)
		}
	}
}
