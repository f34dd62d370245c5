package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestDomainLimiter_BurstThenThrottle(t *testing.T) {
	dl := NewDomainLimiter(1.0, 2)

	if !dl.Allow("https://www.ebay.com/sch/i.html") {
		t.Error("First request should pass within the burst")
	}
	if !dl.Allow("https://www.ebay.com/itm/1") {
		t.Error("Second request should pass within the burst")
	}
	if dl.Allow("https://www.ebay.com/itm/2") {
		t.Error("Third immediate request should be throttled")
	}
}

func TestDomainLimiter_HostsAreIndependent(t *testing.T) {
	dl := NewDomainLimiter(1.0, 1)

	if !dl.Allow("https://www.ebay.com/") {
		t.Fatal("ebay budget should start full")
	}
	if dl.Allow("https://www.ebay.com/again") {
		t.Error("ebay budget should be spent")
	}
	if !dl.Allow("https://www.mouser.com/") {
		t.Error("mouser has its own budget")
	}
}

func TestDomainLimiter_WaitHonorsCancellation(t *testing.T) {
	dl := NewDomainLimiter(0.01, 1)
	// Spend the budget.
	if err := dl.Wait(context.Background(), "https://slow.example.com/"); err != nil {
		t.Fatalf("First wait should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := dl.Wait(ctx, "https://slow.example.com/")
	if err == nil {
		t.Error("Wait past the budget should fail once the context expires")
	}
	if time.Since(start) > time.Second {
		t.Error("Wait should give up when the context does")
	}
}

func TestDomainLimiter_InvalidURLPassesThrough(t *testing.T) {
	dl := NewDomainLimiter(1.0, 1)
	if !dl.Allow("://not a url") {
		t.Error("Unparseable URLs should not be throttled here")
	}
	if err := dl.Wait(context.Background(), "://not a url"); err != nil {
		t.Errorf("Wait on an unparseable URL should not fail: %v", err)
	}
}
