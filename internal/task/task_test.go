package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSubmitDeliversValue(t *testing.T) {
	r := NewRunner[int](2)
	defer r.Close()

	h, err := r.Submit("square", func() (int, error) { return 7 * 7, nil })
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	out, err := h.Await(context.Background())
	if err != nil {
		t.Fatalf("Await error = %v", err)
	}
	if out.Err != nil || out.Value != 49 {
		t.Fatalf("outcome = %+v", out)
	}
	if _, ok := h.Poll(); ok {
		t.Fatal("outcome must be delivered only once")
	}
}

func TestSubmitError(t *testing.T) {
	r := NewRunner[int](1)
	defer r.Close()

	want := errors.New("boom")
	h, _ := r.Submit("fail", func() (int, error) { return 0, want })
	out := <-h.Done()
	if !errors.Is(out.Err, want) {
		t.Fatalf("Err = %v, want %v", out.Err, want)
	}
}

func TestPanicBecomesError(t *testing.T) {
	r := NewRunner[int](1)
	defer r.Close()

	h, _ := r.Submit("panic", func() (int, error) { panic("bad") })
	out := <-h.Done()
	if out.Err == nil {
		t.Fatal("expected error from panicking job")
	}
}

func TestPollBeforeFinish(t *testing.T) {
	r := NewRunner[int](1)
	defer r.Close()

	release := make(chan struct{})
	h, _ := r.Submit("blocked", func() (int, error) {
		<-release
		return 1, nil
	})
	if _, ok := h.Poll(); ok {
		t.Fatal("Poll returned before job finished")
	}
	close(release)
	if _, err := h.Await(context.Background()); err != nil {
		t.Fatalf("Await error = %v", err)
	}
}

func TestAwaitContextCancel(t *testing.T) {
	r := NewRunner[int](1)
	release := make(chan struct{})
	h, _ := r.Submit("slow", func() (int, error) {
		<-release
		return 0, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := h.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Await error = %v, want deadline exceeded", err)
	}
	close(release)
	r.Close()
}

func TestSequenceAndIDs(t *testing.T) {
	r := NewRunner[int](4)
	defer r.Close()

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	var last uint64
	for i := 0; i < 10; i++ {
		h, err := r.Submit("job", func() (int, error) { return 0, nil })
		if err != nil {
			t.Fatalf("Submit error = %v", err)
		}
		if h.Seq <= last {
			t.Fatalf("Seq %d not increasing after %d", h.Seq, last)
		}
		last = h.Seq
		mu.Lock()
		if seen[h.ID.String()] {
			t.Fatalf("duplicate ID %s", h.ID)
		}
		seen[h.ID.String()] = true
		mu.Unlock()
		<-h.Done()
	}
}

func TestSubmitAfterClose(t *testing.T) {
	r := NewRunner[int](1)
	r.Close()
	if _, err := r.Submit("late", func() (int, error) { return 0, nil }); err == nil {
		t.Fatal("expected error submitting to closed runner")
	}
}

func TestNotifyAfterOutcome(t *testing.T) {
	r := NewRunner[int](1)
	defer r.Close()

	h, _ := r.Submit("notify", func() (int, error) { return 3, nil })
	select {
	case <-r.Notify():
	case <-time.After(time.Second):
		t.Fatal("no notification")
	}
	out, ok := h.Poll()
	if !ok || out.Value != 3 {
		t.Fatalf("Poll after notify = %+v, %v", out, ok)
	}
}

func TestSubmitDoesNotBlockWhenWorkersBusy(t *testing.T) {
	r := NewRunner[int](1)
	defer r.Close()

	release := make(chan struct{})
	first, err := r.Submit("first", func() (int, error) {
		<-release
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	submitted := make(chan *Handle[int], 1)
	go func() {
		h, _ := r.Submit("second", func() (int, error) { return 2, nil })
		submitted <- h
	}()

	var second *Handle[int]
	select {
	case second = <-submitted:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("second Submit blocked while the only worker was busy")
	}
	if _, ok := second.Poll(); ok {
		t.Fatal("second job finished before the first released its worker")
	}

	close(release)
	if out := <-first.Done(); out.Value != 1 {
		t.Fatalf("first outcome = %+v", out)
	}
	if out := <-second.Done(); out.Value != 2 {
		t.Fatalf("second outcome = %+v", out)
	}
}

func TestSingleWorkerRunsInSubmissionOrder(t *testing.T) {
	r := NewRunner[int](1)
	defer r.Close()

	var (
		mu    sync.Mutex
		order []int
	)
	handles := make([]*Handle[int], 0, 8)
	for i := range 8 {
		h, err := r.Submit("job", func() (int, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		})
		if err != nil {
			t.Fatalf("Submit error = %v", err)
		}
		handles = append(handles, h)
	}
	for _, h := range handles {
		<-h.Done()
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}

func TestCloseRunsQueuedJobs(t *testing.T) {
	r := NewRunner[int](1)

	release := make(chan struct{})
	first, _ := r.Submit("first", func() (int, error) {
		<-release
		return 1, nil
	})
	queued, _ := r.Submit("queued", func() (int, error) { return 2, nil })

	closed := make(chan struct{})
	go func() {
		r.Close()
		close(closed)
	}()
	close(release)

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
	if out, ok := first.Poll(); !ok || out.Value != 1 {
		t.Fatalf("first outcome = %+v, %v", out, ok)
	}
	if out, ok := queued.Poll(); !ok || out.Value != 2 {
		t.Fatalf("queued outcome = %+v, %v", out, ok)
	}
}
