// Package circuitbreaker 熔断器,用于保护可选的外部依赖(如Redis读缓存)
//
// 三种状态:
//   - Closed:请求正常通过,统计连续失败次数,达到阈值转为Open
//   - Open:请求直接返回ErrOpen,不访问下游;经过Timeout后转为HalfOpen
//   - HalfOpen:放行最多MaxProbes个探测请求,成功转为Closed,失败转回Open
//
// 每次状态切换递增generation,切换前发出的请求结果不再计入新状态
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpen 熔断器打开时返回的错误
var ErrOpen = errors.New("circuit breaker is open")

// Settings 熔断器配置
type Settings struct {
	Name string

	// MaxFailures 连续失败多少次后熔断,<=0时取5
	MaxFailures uint32

	// Timeout Open状态持续时间,<=0时取30秒
	Timeout time.Duration

	// MaxProbes HalfOpen状态允许的探测请求数,<=0时取1
	MaxProbes uint32

	// IsFailure 判断错误是否计为失败,为nil时所有非nil错误都算失败
	// 例如缓存未命中是正常结果,不应触发熔断
	IsFailure func(err error) bool

	// OnStateChange 状态变化回调(在锁内调用,不要在回调中访问熔断器)
	OnStateChange func(name string, from, to State)

	// Now 时钟,测试中可替换
	Now func() time.Time
}

// Counts 当前状态下的统计
type Counts struct {
	Requests            uint32
	Failures            uint32
	ConsecutiveFailures uint32
}

// Breaker 熔断器
type Breaker struct {
	settings Settings

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	openUntil  time.Time
}

// New 创建熔断器
func New(s Settings) *Breaker {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MaxProbes == 0 {
		s.MaxProbes = 1
	}
	if s.IsFailure == nil {
		s.IsFailure = func(err error) bool { return err != nil }
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return &Breaker{settings: s}
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn,直接返回ErrOpen;否则返回fn的错误
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = fn()
	b.after(generation, b.settings.IsFailure(err))
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// Counts 当前状态下的统计
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return b.generation, ErrOpen
	case StateHalfOpen:
		if b.counts.Requests >= b.settings.MaxProbes {
			return b.generation, ErrOpen
		}
	}

	b.counts.Requests++
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.current()
	if generation != b.generation {
		return
	}

	if !failed {
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen {
			b.setState(StateClosed)
		}
		return
	}

	b.counts.Failures++
	b.counts.ConsecutiveFailures++
	switch state {
	case StateClosed:
		if b.counts.ConsecutiveFailures >= b.settings.MaxFailures {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
	}
}

// current 返回当前状态,Open超时后切换为HalfOpen(调用方持有锁)
func (b *Breaker) current() State {
	if b.state == StateOpen && !b.settings.Now().Before(b.openUntil) {
		b.setState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) setState(to State) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.generation++
	b.counts = Counts{}
	if to == StateOpen {
		b.openUntil = b.settings.Now().Add(b.settings.Timeout)
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.settings.Name, from, to)
	}
}
