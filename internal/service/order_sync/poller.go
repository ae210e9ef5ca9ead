package order_sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"canteen/internal/entities"
	"canteen/pkg/logger"

	"github.com/jonboulle/clockwork"
)

const DefaultInterval = 5 * time.Second

type TrackedOrder struct {
	entities.Order
	Display DisplayStatus
}

// Snapshot - список заказов пользователя целиком, как его вернул сервер.
// Version растет с каждым примененным снимком.
type Snapshot struct {
	Orders    []TrackedOrder
	FetchedAt time.Time
	Version   uint64
}

func (s Snapshot) clone() Snapshot {
	orders := make([]TrackedOrder, len(s.Orders))
	for i, o := range s.Orders {
		orders[i] = o
		orders[i].Items = append([]entities.LineItem(nil), o.Items...)
	}
	s.Orders = orders
	return s
}

type Option func(*Poller)

// WithOnUpdate вызывается после каждого примененного снимка, в порядке версий.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// Poller держит локальную копию заказов пользователя. Каждый тик шлет
// отдельный запрос, не дожидаясь предыдущего, без backoff. Ответ заменяет
// снимок целиком, если он новее уже примененного: ответ на более ранний
// запрос, пришедший позже, отбрасывается.
type Poller struct {
	log      logger.Logger
	fetcher  OrderFetcher
	clock    clockwork.Clock
	interval time.Duration
	onUpdate func(Snapshot)

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	issued   uint64
	applied  uint64
	snapshot Snapshot
	wg       sync.WaitGroup

	notifyMu sync.Mutex
	notified uint64
}

func New(log logger.Logger, fetcher OrderFetcher, clock clockwork.Clock, opts ...Option) *Poller {
	p := &Poller{
		log:      log,
		fetcher:  fetcher,
		clock:    clock,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start сразу запрашивает заказы пользователя сессии и дальше повторяет
// запрос каждый interval, пока не вызван Stop или не отменен ctx.
// Снимок прошлой сессии сбрасывается.
func (p *Poller) Start(ctx context.Context, session *Session) error {
	if session == nil {
		return ErrNoSession
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	p.snapshot = Snapshot{}
	p.mu.Unlock()

	email := session.User.Email
	log := p.log.With(logger.NewField("user_email", email))

	ticker := p.clock.NewTicker(p.interval)
	p.fetch(ctx, log, email)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				p.fetch(ctx, log, email)
			}
		}
	}()

	log.With(logger.NewField("interval", p.interval.String())).Debug("order sync started")
	return nil
}

// Stop останавливает тикер и отменяет запросы в полете. Повторный вызов
// ничего не делает. Последний снимок остается доступен.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	p.mu.Unlock()

	p.wg.Wait()
	p.log.Debug("order sync stopped")
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot.clone()
}

func (p *Poller) fetch(ctx context.Context, log logger.Logger, email string) {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		orders, err := p.fetcher.GetUserOrders(ctx, email)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.With(
				logger.NewField("error", err),
				logger.NewField("request", seq),
			).Warn("order sync fetch failed, keeping previous snapshot")
			return
		}

		p.apply(ctx, log, seq, orders)
	}()
}

func (p *Poller) apply(ctx context.Context, log logger.Logger, seq uint64, orders []entities.Order) {
	tracked := make([]TrackedOrder, len(orders))
	for i, o := range orders {
		tracked[i] = TrackedOrder{Order: o, Display: ToDisplayStatus(o.Status)}
	}

	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	if applied := p.applied; seq <= applied {
		p.mu.Unlock()
		log.With(
			logger.NewField("request", seq),
			logger.NewField("applied", applied),
		).Debug("stale order snapshot discarded")
		return
	}
	p.applied = seq
	p.snapshot = Snapshot{Orders: tracked, FetchedAt: p.clock.Now(), Version: seq}
	snapshot := p.snapshot.clone()
	p.mu.Unlock()

	if p.onUpdate == nil {
		return
	}

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	if seq > p.notified {
		p.notified = seq
		p.onUpdate(snapshot)
	}
}
