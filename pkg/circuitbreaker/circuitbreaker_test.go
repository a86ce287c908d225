package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBreaker(clock *fakeClock) *Breaker {
	return New(Settings{
		Name:        "redis",
		MaxFailures: 3,
		Timeout:     10 * time.Second,
		Now:         clock.Now,
	})
}

func fail() error    { return errDown }
func succeed() error { return nil }

func TestBreakerClosed(t *testing.T) {
	b := newBreaker(&fakeClock{now: time.Unix(0, 0)})

	// 成功会清零连续失败
	assert.ErrorIs(t, b.Execute(fail), errDown)
	assert.ErrorIs(t, b.Execute(fail), errDown)
	assert.NoError(t, b.Execute(succeed))
	assert.ErrorIs(t, b.Execute(fail), errDown)

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(4), b.Counts().Requests)
	assert.Equal(t, uint32(1), b.Counts().ConsecutiveFailures)
}

func TestBreakerOpens(t *testing.T) {
	b := newBreaker(&fakeClock{now: time.Unix(0, 0)})

	for i := 0; i < 3; i++ {
		_ = b.Execute(fail)
	}
	require.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called, "熔断时不应访问下游")
}

func TestBreakerHalfOpen(t *testing.T) {
	t.Run("探测成功后关闭", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		b := newBreaker(clock)
		for i := 0; i < 3; i++ {
			_ = b.Execute(fail)
		}

		clock.Advance(10 * time.Second)
		assert.Equal(t, StateHalfOpen, b.State())

		assert.NoError(t, b.Execute(succeed))
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("探测失败后重新打开", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		b := newBreaker(clock)
		for i := 0; i < 3; i++ {
			_ = b.Execute(fail)
		}

		clock.Advance(11 * time.Second)
		assert.ErrorIs(t, b.Execute(fail), errDown)
		assert.Equal(t, StateOpen, b.State())

		clock.Advance(5 * time.Second)
		assert.ErrorIs(t, b.Execute(succeed), ErrOpen, "重新计时,未到超时时间")
	})

	t.Run("探测请求数受限", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		b := newBreaker(clock)
		for i := 0; i < 3; i++ {
			_ = b.Execute(fail)
		}
		clock.Advance(10 * time.Second)

		release := make(chan struct{})
		done := make(chan error)
		go func() {
			done <- b.Execute(func() error {
				<-release
				return nil
			})
		}()

		// 等待探测请求进入
		require.Eventually(t, func() bool { return b.Counts().Requests == 1 }, time.Second, time.Millisecond)
		assert.ErrorIs(t, b.Execute(succeed), ErrOpen)

		close(release)
		assert.NoError(t, <-done)
		assert.Equal(t, StateClosed, b.State())
	})
}

func TestBreakerIsFailure(t *testing.T) {
	errMiss := errors.New("cache miss")
	b := New(Settings{
		MaxFailures: 1,
		IsFailure:   func(err error) bool { return err != nil && !errors.Is(err, errMiss) },
	})

	for i := 0; i < 10; i++ {
		assert.ErrorIs(t, b.Execute(func() error { return errMiss }), errMiss)
	}
	assert.Equal(t, StateClosed, b.State(), "未命中不计为失败")

	_ = b.Execute(fail)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerStateChangeCallback(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []string
	b := New(Settings{
		Name:        "redis",
		MaxFailures: 1,
		Timeout:     time.Second,
		Now:         clock.Now,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	clock.Advance(time.Second)
	_ = b.Execute(succeed)

	assert.Equal(t, []string{
		"redis:closed->open",
		"redis:open->half_open",
		"redis:half_open->closed",
	}, transitions)
}
