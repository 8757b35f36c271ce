package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight[string]
	var counter, shared int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, wasShared := g.Do("clubs:list:0:30", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || val != "ok" {
				t.Errorf("singleflight call: val=%q err=%v", val, err)
			}
			if wasShared {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
}

func TestSingleFlight_ForgetsFinishedCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight[int]
	errLoad := errors.New("load failed")

	if _, err, _ := g.Do("club:1", func() (int, error) { return 0, errLoad }); !errors.Is(err, errLoad) {
		t.Fatalf("expected load error, got %v", err)
	}
	val, err, shared := g.Do("club:1", func() (int, error) { return 7, nil })
	if err != nil || val != 7 || shared {
		t.Fatalf("expected a fresh call, val=%d err=%v shared=%v", val, err, shared)
	}
}

func TestSingleFlight_PanicReachesWaitersAsError(t *testing.T) {
	t.Parallel()

	var g SingleFlight[int]
	entered := make(chan struct{})
	release := make(chan struct{})

	waiterErr := make(chan error, 1)
	go func() {
		defer func() { _ = recover() }()
		g.Do("club:9", func() (int, error) {
			close(entered)
			<-release
			panic("boom")
		})
	}()

	<-entered
	go func() {
		_, err, _ := g.Do("club:9", func() (int, error) { return 1, nil })
		waiterErr <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	if err := <-waiterErr; err == nil {
		t.Fatalf("expected waiter to observe the panic as an error")
	}
}
