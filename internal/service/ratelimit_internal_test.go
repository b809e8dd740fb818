package service

import (
	"testing"
	"time"
)

func TestTokenBucket_SweepDropsIdleKeys(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	defer tb.Stop()

	tb.Allow("stale")
	tb.Allow("fresh")
	tb.buckets["stale"].last = time.Now().Add(-time.Hour)

	tb.sweep(time.Now().Add(-10 * time.Minute))

	if _, ok := tb.buckets["stale"]; ok {
		t.Fatal("expected stale bucket to be removed")
	}
	if _, ok := tb.buckets["fresh"]; !ok {
		t.Fatal("expected fresh bucket to survive")
	}
}
