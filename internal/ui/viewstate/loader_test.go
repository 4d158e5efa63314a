package viewstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	val string
	err error
}

// gate is a fetch that blocks until the test releases it.
type gate struct {
	release chan result
	started chan struct{}
	ctxErr  atomic.Value
}

func newGate() *gate {
	return &gate{release: make(chan result, 1), started: make(chan struct{})}
}

func (g *gate) fetch(ctx context.Context) (string, error) {
	close(g.started)
	select {
	case r := <-g.release:
		return r.val, r.err
	case <-ctx.Done():
		g.ctxErr.Store(ctx.Err())
		// still return a value so a missing liveness check would be visible
		return "late", nil
	}
}

func waitIdle(t *testing.T, l *Loader[string]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.WaitIdle(ctx))
}

func TestLoader_StartsLoading(t *testing.T) {
	l := NewLoader[string]("test")
	s := l.Snapshot()
	assert.True(t, s.Loading)
	assert.False(t, s.HasData)
}

func TestLoader_SuccessReplacesDataAndClearsError(t *testing.T) {
	l := NewLoader[string]("test")
	require.True(t, l.Mount(context.Background()))
	defer l.Unmount()

	_, ok := l.Load(func(context.Context) (string, error) { return "", errors.New("boom") })
	require.True(t, ok)
	waitIdle(t, l)

	s := l.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, "boom", s.Error)
	assert.False(t, s.HasData)

	l.Load(func(context.Context) (string, error) { return "v1", nil })
	waitIdle(t, l)

	s = l.Snapshot()
	assert.Equal(t, "v1", s.Data)
	assert.True(t, s.HasData)
	assert.Empty(t, s.Error)
}

func TestLoader_FailureKeepsStaleData(t *testing.T) {
	l := NewLoader[string]("test", WithErrorMessage(func(error) string { return "request failed" }))
	l.Mount(context.Background())
	defer l.Unmount()

	l.Load(func(context.Context) (string, error) { return "good", nil })
	waitIdle(t, l)
	l.Load(func(context.Context) (string, error) { return "ignored", errors.New("x") })
	waitIdle(t, l)

	s := l.Snapshot()
	assert.Equal(t, "good", s.Data)
	assert.Equal(t, "request failed", s.Error)
}

func TestLoader_NewestIssuedRequestWins(t *testing.T) {
	l := NewLoader[string]("test")
	l.Mount(context.Background())
	defer l.Unmount()

	first, second := newGate(), newGate()
	g1, _ := l.Load(first.fetch)
	<-first.started
	g2, _ := l.Load(second.fetch)
	<-second.started
	require.Greater(t, g2, g1)

	second.release <- result{val: "second"}
	waitIdle(t, l)

	// the first request was cancelled when the second was issued and its
	// completion must be dropped
	assert.Eventually(t, func() bool { return first.ctxErr.Load() != nil }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	s := l.Snapshot()
	assert.Equal(t, "second", s.Data)
	assert.Equal(t, g2, s.Generation)
}

func TestLoader_WaitIdleFollowsSupersedingRequest(t *testing.T) {
	l := NewLoader[string]("test")
	l.Mount(context.Background())
	defer l.Unmount()

	first := newGate()
	l.Load(first.fetch)
	<-first.started

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- l.WaitIdle(ctx)
	}()

	second := newGate()
	l.Load(second.fetch)
	<-second.started

	select {
	case <-done:
		t.Fatal("WaitIdle returned before the newest request settled")
	case <-time.After(30 * time.Millisecond):
	}

	second.release <- result{val: "ok"}
	require.NoError(t, <-done)
}

func TestLoader_UnmountDropsLateCompletion(t *testing.T) {
	l := NewLoader[string]("test")
	l.Mount(context.Background())

	g := newGate()
	l.Load(g.fetch)
	<-g.started
	before := l.Snapshot()

	l.Unmount()
	assert.Eventually(t, func() bool { return g.ctxErr.Load() != nil }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	after := l.Snapshot()
	assert.False(t, after.HasData)
	assert.Equal(t, before.Generation, after.Generation)

	_, ok := l.Load(func(context.Context) (string, error) { return "x", nil })
	assert.False(t, ok, "Load on an unmounted loader must be refused")
}

func TestLoader_RemountDiscardsState(t *testing.T) {
	l := NewLoader[string]("test")
	l.Mount(context.Background())
	l.Load(func(context.Context) (string, error) { return "old", nil })
	waitIdle(t, l)
	l.Unmount()

	require.True(t, l.Mount(context.Background()))
	defer l.Unmount()
	s := l.Snapshot()
	assert.True(t, s.Loading)
	assert.False(t, s.HasData)
	assert.False(t, l.Mount(context.Background()))
}

func TestLoader_OnChangeFires(t *testing.T) {
	l := NewLoader[string]("test")
	var calls atomic.Int32
	l.OnChange(func() { calls.Add(1) })
	l.Mount(context.Background())
	defer l.Unmount()

	l.Load(func(context.Context) (string, error) { return "v", nil })
	waitIdle(t, l)

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}
