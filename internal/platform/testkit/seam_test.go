package testkit

import (
	"sync"
	"testing"
	"time"
)

var (
	clockFn    = func() int64 { return 1 }
	bufferSize = 64
)

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clockFn, func() int64 { return 99 })
		if prev := Swap(t, &bufferSize, 1); prev != 64 {
			t.Fatalf("Swap returned %d, want previous 64", prev)
		}
		if clockFn() != 99 || bufferSize != 1 {
			t.Fatalf("swap did not take effect")
		}
	})
	if clockFn() != 1 || bufferSize != 64 {
		t.Fatalf("swap did not restore: clock=%d buffer=%d", clockFn(), bufferSize)
	}
}

func TestSerial_DoesNotInterleave(t *testing.T) {
	var mu sync.Mutex
	var seq []string
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"A", "B"} {
			name := name
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "-start")
				time.Sleep(20 * time.Millisecond)
				record(name + "-end")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("seq = %v", seq)
	}
	if seq[0][:1] != seq[1][:1] || seq[2][:1] != seq[3][:1] {
		t.Fatalf("interleaved: %v", seq)
	}
}

func TestSerialOn_LocksPerSeam(t *testing.T) {
	t.Run("held", func(t *testing.T) {
		SerialOn(t, "registry")

		if seamLock("registry").TryLock() {
			t.Fatalf("same seam acquired while held")
		}

		other := make(chan struct{})
		go func() {
			mu := seamLock("env")
			mu.Lock()
			mu.Unlock()
			close(other)
		}()
		select {
		case <-other:
		case <-time.After(time.Second):
			t.Fatalf("distinct seam blocked by a held one")
		}
	})

	mu := seamLock("registry")
	if !mu.TryLock() {
		t.Fatalf("seam not released after the test ended")
	}
	mu.Unlock()
}
