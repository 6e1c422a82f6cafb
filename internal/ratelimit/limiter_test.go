package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNilLimiterAllows(t *testing.T) {
	l := New(0, 0, 0)
	if l != nil {
		t.Fatal("New(0, 0) should return nil")
	}
	for range 100 {
		if !l.Allow("k", time.Now()) {
			t.Fatal("nil limiter should allow")
		}
	}
}

func TestBurstThenRefill(t *testing.T) {
	l := New(1, 2, time.Minute)
	now := time.Unix(1000, 0)

	if !l.Allow("a", now) || !l.Allow("a", now) {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow("a", now) {
		t.Error("third call within the same instant should be rejected")
	}
	if !l.Allow("b", now) {
		t.Error("keys must not share a bucket")
	}
	if !l.Allow("a", now.Add(time.Second)) {
		t.Error("one token should refill after a second")
	}
}

func TestBlankKeyAllowed(t *testing.T) {
	l := New(1, 1, time.Minute)
	now := time.Now()
	for range 5 {
		if !l.Allow("  ", now) {
			t.Fatal("blank key should bypass the limiter")
		}
	}
	if l.size() != 0 {
		t.Errorf("size() = %d, want 0", l.size())
	}
}

func TestEvictIdle(t *testing.T) {
	l := New(100, 100, time.Minute)
	start := time.Unix(0, 0)
	for i := range 511 {
		l.Allow(fmt.Sprintf("k%d", i), start)
	}
	// The 512th hit triggers eviction of everything idle for over a minute.
	l.Allow("fresh", start.Add(2*time.Minute))
	if l.size() != 1 {
		t.Errorf("size() = %d, want 1 after eviction", l.size())
	}
}

func TestUnaryInterceptor(t *testing.T) {
	l := New(0.001, 1, time.Minute)
	intercept := l.UnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Search"}
	calls := 0
	handler := func(context.Context, any) (any, error) {
		calls++
		return "ok", nil
	}

	if _, err := intercept(context.Background(), nil, info, handler); err != nil {
		t.Fatalf("first call: %v", err)
	}
	_, err := intercept(context.Background(), nil, info, handler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Errorf("second call code = %v, want ResourceExhausted", status.Code(err))
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}
