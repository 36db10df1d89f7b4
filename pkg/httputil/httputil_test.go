package httputil

import (
	"strings"
	"sync"
	"testing"
)

func TestClientSharedPerTier(t *testing.T) {
	if Client(TierFast) != Client(TierFast) {
		t.Error("same tier should return the same client")
	}
	if Client(TierFast) == Client(TierSlow) {
		t.Error("different tiers should return different clients")
	}
	if Client(TimeoutTier(99)) != Client(TierMedium) {
		t.Error("unknown tier should fall back to medium")
	}
}

func TestClientTimeouts(t *testing.T) {
	if fast, slow := Client(TierFast).Timeout, Client(TierSlow).Timeout; fast >= slow {
		t.Errorf("fast timeout %v should be below slow timeout %v", fast, slow)
	}
}

func TestReadResponseBodyCapsSize(t *testing.T) {
	big := strings.Repeat("x", 100)

	body, err := ReadResponseBody(strings.NewReader(big), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 10 {
		t.Errorf("read %d bytes, want 10", len(body))
	}

	body, err = ReadResponseBody(strings.NewReader(big), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 100 {
		t.Errorf("default cap truncated a small body to %d bytes", len(body))
	}
}

func TestSemaphoreShedsAtCapacity(t *testing.T) {
	s := NewSemaphore(2)

	if !s.TryAcquire() || !s.TryAcquire() {
		t.Fatal("acquires within capacity should succeed")
	}
	if s.TryAcquire() {
		t.Error("acquire at capacity should fail")
	}
	if s.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", s.Skipped())
	}

	s.Release()
	if !s.TryAcquire() {
		t.Error("acquire after release should succeed")
	}
	if s.InUse() != 2 {
		t.Errorf("in use = %d, want 2", s.InUse())
	}
}

func TestSemaphoreConcurrent(t *testing.T) {
	s := NewSemaphore(8)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryAcquire() {
				s.Release()
			}
		}()
	}
	wg.Wait()

	if s.InUse() != 0 {
		t.Errorf("in use = %d after all released, want 0", s.InUse())
	}
}

func TestSemaphoreDefaultCapacity(t *testing.T) {
	s := NewSemaphore(0)
	for i := 0; i < 32; i++ {
		if !s.TryAcquire() {
			t.Fatalf("acquire %d failed within default capacity", i)
		}
	}
	if s.TryAcquire() {
		t.Error("default capacity should be 32")
	}
}
