package progression

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"canteen/internal/entities"
	"canteen/internal/pkg/metrics"
	"canteen/internal/service/order"
	"canteen/pkg/logger"

	"github.com/jonboulle/clockwork"
)

// Engine автоматически проводит заказ по PLACED -> PREPARING -> READY -> COMPLETED.
//
// На заказ взводится одна цепочка таймеров: срабатывание выполняет все шаги,
// чей срок (createdAt + смещение) уже наступил, строго по порядку, и взводит
// таймер на следующий. Шаги одного заказа никогда не пишут параллельно.
// Цепочка не обрывается, когда заказ досрочно получает финальный статус.
// В обычном режиме шаг перезаписывает статус без условий, поэтому ручная
// отмена до срабатывания таймера будет затерта.
type Engine struct {
	log           logger.Logger
	repository    Repository
	publisher     EventPublisher
	clock         clockwork.Clock
	steps         []Step
	guarded       bool
	updateTimeout time.Duration

	// ctx живет до Close, от него наследуются записи таймеров
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	timers map[*progress]clockwork.Timer
	// +1 на каждый взведенный таймер, снимается после его колбэка
	// или в Close, если таймер удалось остановить
	inflight sync.WaitGroup
}

// progress - оставшиеся шаги одного заказа, next указывает на первый невыполненный.
type progress struct {
	order entities.Order
	next  int
}

func New(log logger.Logger, repository Repository, publisher EventPublisher, clock clockwork.Clock, cfg Config) *Engine {
	steps := cfg.steps()
	slices.SortStableFunc(steps, func(a, b Step) int {
		return cmp.Compare(a.After, b.After)
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		log:           log.With(logger.NewField("component", "progression")),
		repository:    repository,
		publisher:     publisher,
		clock:         clock,
		steps:         steps,
		guarded:       cfg.Guarded,
		updateTimeout: orDefault(cfg.UpdateTimeout, DefaultUpdateTimeout),
		ctx:           ctx,
		cancel:        cancel,
		timers:        make(map[*progress]clockwork.Timer),
	}
}

// Schedule взводит цепочку шагов для заказа. Если заказ создан давно,
// просроченные шаги выполняются сразу, по порядку.
func (e *Engine) Schedule(o entities.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		e.log.Warn("engine closed, order progression not scheduled",
			logger.NewField("order", o.ID),
		)
		return
	}
	if len(e.steps) == 0 {
		return
	}

	e.arm(&progress{order: o})
}

func (e *Engine) dueAt(p *progress) time.Time {
	return p.order.CreatedAt.Add(e.steps[p.next].After)
}

// arm вызывается под e.mu
func (e *Engine) arm(p *progress) {
	e.inflight.Add(1)
	e.timers[p] = e.clock.AfterFunc(e.dueAt(p).Sub(e.clock.Now()), func() {
		e.fire(p)
	})
}

// Pending возвращает число шагов, ожидающих своего таймера.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for p := range e.timers {
		n += len(e.steps) - p.next
	}
	return n
}

// Close останавливает несработавшие таймеры и ждет колбэки, которые уже
// сработали. Используется только при остановке процесса.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	dropped := 0
	for p, timer := range e.timers {
		if timer.Stop() {
			dropped += len(e.steps) - p.next
			e.inflight.Done()
		}
		delete(e.timers, p)
	}
	e.mu.Unlock()

	e.inflight.Wait()
	e.cancel()

	if dropped > 0 {
		e.log.Warn("pending order transitions dropped on shutdown",
			logger.NewField("steps", dropped),
		)
	}
}

// fire выполняет наступившие шаги. Сработавший таймер дописывает свои шаги
// и после Close, но следующий уже не взводит.
func (e *Engine) fire(p *progress) {
	defer e.inflight.Done()

	e.mu.Lock()
	delete(e.timers, p)
	now := e.clock.Now()
	from := p.next
	// первый шаг выполняется всегда: таймер сработал именно на его срок
	p.next++
	for p.next < len(e.steps) && !e.dueAt(p).After(now) {
		p.next++
	}
	due := e.steps[from:p.next]
	e.mu.Unlock()

	for _, step := range due {
		e.apply(p.order, step)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed && p.next < len(e.steps) {
		e.arm(p)
	}
}

func (e *Engine) apply(o entities.Order, step Step) {
	ctx, cancel := context.WithTimeout(e.ctx, e.updateTimeout)
	defer cancel()

	stepLog := e.log.With(
		logger.NewField("order", o.ID),
		logger.NewField("status", step.Status.String()),
		logger.NewField("after", step.After.String()),
	)

	var (
		update *entities.StatusUpdate
		err    error
	)
	if e.guarded {
		update, err = e.repository.UpdateStatusFrom(ctx, o.ID, step.From, step.Status)
	} else {
		update, err = e.repository.UpdateStatus(ctx, o.ID, step.Status)
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		// запись по несуществующему заказу - no-op
		e.count(step.Status, metrics.ResultNotFound)
		stepLog.Debug("automatic transition skipped, order not found")
		return
	case errors.Is(err, order.ErrStatusConflict):
		e.count(step.Status, metrics.ResultSkipped)
		stepLog.Info("automatic transition skipped, order already moved on")
		return
	case err != nil:
		e.count(step.Status, metrics.ResultFailed)
		stepLog.Error("automatic transition failed", logger.NewField("error", err))
		return
	}

	e.count(step.Status, metrics.ResultApplied)

	event := entities.OrderStatusChanged{
		OrderID:        update.Order.ID,
		UserEmail:      update.Order.UserDetails.Email,
		Status:         update.Order.Status,
		PreviousStatus: update.PreviousStatus,
		Source:         entities.SourceTimer,
		ChangedAt:      update.Order.UpdatedAt,
	}

	if event.OverwroteTerminal() {
		metrics.OrderStatusTerminalOverwritesTotal.
			WithLabelValues(update.PreviousStatus.String(), step.Status.String()).
			Inc()
		stepLog.Warn("automatic transition overwrote terminal status",
			logger.NewField("previous_status", update.PreviousStatus.String()),
		)
	} else {
		stepLog.Info("order status changed",
			logger.NewField("previous_status", update.PreviousStatus.String()),
			logger.NewField("source", entities.SourceTimer.String()),
		)
	}

	e.publisher.Publish(ctx, event)
}

func (e *Engine) count(status entities.OrderStatus, result string) {
	metrics.OrderStatusTransitionsTotal.
		WithLabelValues(entities.SourceTimer.String(), status.String(), result).
		Inc()
}
