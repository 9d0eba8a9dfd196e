package gate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestAcquire_Release_AllowsNext(t *testing.T) {
	g := New(time.Second)

	release, err := g.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	release()

	release, err = g.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	release()
}

func TestAcquire_TimesOutBusy(t *testing.T) {
	g := New(20 * time.Millisecond)

	release, err := g.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	_, err = g.Acquire(context.Background())
	if !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
}

func TestAcquire_CallerCancellation(t *testing.T) {
	g := New(time.Minute)

	release, err := g.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGate_MutualExclusion(t *testing.T) {
	g := New(time.Second)

	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := g.Acquire(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			defer release()

			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Errorf("gate admitted %d concurrent holders, want 1", maxInFlight)
	}
}
