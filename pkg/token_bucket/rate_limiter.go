package token_bucket

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

/*
Отдельное ведро на каждый ключ (IP клиента). Ведра, которыми давно не
пользовались, выбрасываются при очередном Allow не чаще раза в idleTTL.
*/

const defaultIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyedLimiter struct {
	refillRate rate.Limit
	capacity   int
	idleTTL    time.Duration
	clock      clockwork.Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type Option func(l *KeyedLimiter)

func WithClock(clock clockwork.Clock) Option {
	return func(l *KeyedLimiter) {
		l.clock = clock
	}
}

func WithIdleTTL(ttl time.Duration) Option {
	return func(l *KeyedLimiter) {
		if ttl > 0 {
			l.idleTTL = ttl
		}
	}
}

// NewKeyedLimiter: refillRate - токенов в секунду, capacity - размер ведра.
func NewKeyedLimiter(capacity int, refillRate float64, opts ...Option) *KeyedLimiter {
	l := &KeyedLimiter{
		refillRate: rate.Limit(refillRate),
		capacity:   capacity,
		idleTTL:    defaultIdleTTL,
		clock:      clockwork.NewRealClock(),
		buckets:    make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.clock.Now()
	return l
}

func (l *KeyedLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	l.sweep(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.refillRate, l.capacity)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Len - число отслеживаемых ключей.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep вызывается под l.mu
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
