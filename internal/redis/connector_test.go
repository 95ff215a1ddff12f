package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/quill/internal/logger"
)

func testOptions(addr string) Options {
	return Options{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
		PoolSize:       2,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), testOptions(mr.Addr()), logger.NewNop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Errorf("Set() error = %v", err)
	}
}

func TestConnectGivesUp(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	if _, err := Connect(context.Background(), testOptions(addr), logger.NewNop()); err == nil {
		t.Fatal("Connect() should fail when redis is down")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Connect() took %v, should respect ConnectTimeout", elapsed)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"missing addr", func(o *Options) { o.Addr = "" }},
		{"zero connect timeout", func(o *Options) { o.ConnectTimeout = 0 }},
		{"zero retry interval", func(o *Options) { o.RetryInterval = 0 }},
		{"zero max wait", func(o *Options) { o.MaxWait = 0 }},
		{"zero ping timeout", func(o *Options) { o.PingTimeout = 0 }},
		{"negative warn threshold", func(o *Options) { o.WarnThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("localhost:6379")
			tt.mutate(&opts)
			if err := opts.validate(); err == nil {
				t.Error("validate() should fail")
			}
		})
	}
}

func TestNextWait(t *testing.T) {
	if got := nextWait(2*time.Second, 10*time.Second); got != 4*time.Second {
		t.Errorf("nextWait() = %v, want 4s", got)
	}
	if got := nextWait(8*time.Second, 10*time.Second); got != 10*time.Second {
		t.Errorf("nextWait() = %v, want cap 10s", got)
	}
}
