package connector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrNotReady возвращается, когда подключение к хранилищу не установлено.
// Вызывающая сторона обязана ответить быстрым отказом, а не ждать восстановления.
var ErrNotReady = errors.New("store connection is not ready")

// State описывает состояние жизненного цикла подключения к хранилищу
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Conn представляет активное подключение к хранилищу
type Conn interface {
	Ping(ctx context.Context) error
	Close()
}

// DialFunc устанавливает новое подключение к хранилищу
type DialFunc func(ctx context.Context) (Conn, error)

// Options задаёт политику ретраев и проверки живости подключения
type Options struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
}

// Connector владеет жизненным циклом подключения к хранилищу:
// устанавливает его с ретраями и экспоненциальной задержкой, следит за живостью
// и переподключается после обрыва. Остальные компоненты получают текущее
// подключение через Conn и не должны кешировать его между вызовами.
type Connector struct {
	dial   DialFunc
	opts   Options
	logger *zap.Logger

	state atomic.Int32

	mu   sync.RWMutex
	conn Conn

	stop     chan struct{}
	stopCtx  context.Context
	stopFunc context.CancelFunc
	done     chan struct{}
	failOnce sync.Once
	wg       sync.WaitGroup

	// sleep подменяется в тестах, чтобы не ждать реальные задержки
	sleep func(ctx context.Context, d time.Duration) error
}

// New создает Connector с заданной функцией подключения
func New(dial DialFunc, opts Options, logger *zap.Logger) *Connector {
	stopCtx, stopFunc := context.WithCancel(context.Background())

	return &Connector{
		dial:     dial,
		opts:     opts,
		logger:   logger,
		stop:     make(chan struct{}),
		stopCtx:  stopCtx,
		stopFunc: stopFunc,
		done:     make(chan struct{}),
		sleep:    sleepCtx,
	}
}

// Start устанавливает первоначальное подключение, блокируясь до успеха
// или исчерпания бюджета ретраев, после чего запускает фоновое наблюдение
func (c *Connector) Start(ctx context.Context) error {
	if err := c.establish(ctx, Connecting); err != nil {
		return err
	}

	c.wg.Add(1)
	go c.watch()

	return nil
}

// Close останавливает наблюдение и закрывает текущее подключение.
// Идущий в этот момент цикл переподключения прерывается: остановка
// не ждёт исчерпания бюджета ретраев.
func (c *Connector) Close() {
	close(c.stop)
	c.stopFunc()
	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.setState(Disconnected)
}

// State возвращает текущее состояние подключения
func (c *Connector) State() State {
	return State(c.state.Load())
}

// Ready сообщает, готово ли подключение к работе
func (c *Connector) Ready() bool {
	return c.State() == Connected
}

// Conn возвращает текущее подключение или ErrNotReady.
// Подключение нельзя кешировать: после реконнекта оно меняется.
func (c *Connector) Conn() (Conn, error) {
	if !c.Ready() {
		return nil, ErrNotReady
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return nil, ErrNotReady
	}
	return c.conn, nil
}

// Done возвращает канал, закрываемый при переходе в состояние Failed.
// Приложение трактует его как сигнал к завершению: решение о рестарте
// остаётся за супервизором процесса.
func (c *Connector) Done() <-chan struct{} {
	return c.done
}

// establish выполняет цикл подключения с экспоненциальной задержкой.
// Исчерпание бюджета ретраев переводит Connector в терминальное состояние Failed.
func (c *Connector) establish(ctx context.Context, via State) error {
	c.setState(via)

	for attempt := 0; ; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
		conn, err := c.dial(dialCtx)
		cancel()

		if err == nil {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
			c.setState(Connected)
			return nil
		}

		if attempt >= c.opts.MaxRetries {
			c.setState(Failed)
			c.failOnce.Do(func() { close(c.done) })
			return fmt.Errorf("store connection failed after %d retries: %w", c.opts.MaxRetries, err)
		}

		delay := c.backoff(attempt)
		c.logger.Warn("store connection attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.opts.MaxRetries),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := c.sleep(ctx, delay); err != nil {
			c.setState(Disconnected)
			return fmt.Errorf("store connection aborted: %w", err)
		}
	}
}

// watch периодически проверяет живость подключения и инициирует реконнект
func (c *Connector) watch() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.opts.HealthCheckPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if !c.healthy() {
				if err := c.reconnect(); err != nil {
					c.logger.Error("store reconnection failed", zap.Error(err))
					return
				}
			}
		}
	}
}

func (c *Connector) healthy() bool {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil || c.State() != Connected {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.ConnectTimeout)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		c.logger.Warn("store connection lost", zap.Error(err))
		return false
	}
	return true
}

func (c *Connector) reconnect() error {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	return c.establish(c.stopCtx, Reconnecting)
}

func (c *Connector) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	if prev == s {
		return
	}

	switch s {
	case Connected:
		c.logger.Info("store connection established",
			zap.String("from", prev.String()),
		)
	case Failed:
		c.logger.Error("store connection entered terminal failed state",
			zap.String("from", prev.String()),
		)
	}
}

func (c *Connector) backoff(attempt int) time.Duration {
	delay := c.opts.BaseDelay << attempt
	if delay <= 0 || delay > c.opts.MaxDelay {
		return c.opts.MaxDelay
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
