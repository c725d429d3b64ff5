package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestAllow_ExactlyLimitWithinWindow(t *testing.T) {
	l := New(time.Minute, 5)
	for i := 0; i < 5; i++ {
		if !l.Allow("c1") {
			t.Fatalf("request %d should be admitted", i+1)
		}
	}
	if l.Allow("c1") {
		t.Fatal("request limit+1 should be rejected")
	}
}

func TestAllow_WindowElapses(t *testing.T) {
	l := New(time.Minute, 2)
	current := time.Unix(1000, 0)
	l.now = func() time.Time { return current }

	if !l.Allow("c1") || !l.Allow("c1") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("c1") {
		t.Fatal("third request should be rejected")
	}

	current = current.Add(61 * time.Second)
	if !l.Allow("c1") {
		t.Fatal("request after window elapsed should be admitted")
	}
}

func TestAllow_RejectionNotRecorded(t *testing.T) {
	l := New(time.Minute, 1)
	current := time.Unix(1000, 0)
	l.now = func() time.Time { return current }

	if !l.Allow("c1") {
		t.Fatal("first request should pass")
	}
	// Hammer rejections; none may extend the window.
	for i := 0; i < 10; i++ {
		current = current.Add(time.Second)
		if l.Allow("c1") {
			t.Fatal("over-limit request admitted")
		}
	}
	// Only the single admitted timestamp counts; once it ages out the
	// client is clean again.
	current = current.Add(51 * time.Second)
	if !l.Allow("c1") {
		t.Fatal("rejections must not be recorded in the window")
	}
}

func TestAllow_ClientsIsolated(t *testing.T) {
	l := New(time.Minute, 1)
	if !l.Allow("a") {
		t.Fatal("client a should pass")
	}
	if !l.Allow("b") {
		t.Fatal("client b must have its own window")
	}
	if l.Allow("a") {
		t.Fatal("client a should be limited")
	}
}

func TestAllow_PrunesOldTimestamps(t *testing.T) {
	l := New(time.Minute, 100)
	current := time.Unix(1000, 0)
	l.now = func() time.Time { return current }

	for i := 0; i < 50; i++ {
		l.Allow("c1")
		current = current.Add(time.Second)
	}
	current = current.Add(2 * time.Minute)
	l.Allow("c1")

	l.mu.Lock()
	n := len(l.clients["c1"])
	l.mu.Unlock()
	if n != 1 {
		t.Fatalf("expected stale timestamps pruned, window holds %d", n)
	}
}

func TestAllow_Concurrent(t *testing.T) {
	l := New(time.Minute, 100)
	var wg sync.WaitGroup
	admitted := make(chan bool, 500)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				admitted <- l.Allow("shared")
			}
		}()
	}
	wg.Wait()
	close(admitted)

	var yes int
	for ok := range admitted {
		if ok {
			yes++
		}
	}
	if yes != 100 {
		t.Fatalf("expected exactly 100 admissions, got %d", yes)
	}
}
